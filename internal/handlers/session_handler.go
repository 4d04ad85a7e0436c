package handlers

import (
	"github.com/gofiber/fiber/v2"

	"qna_workspace/dto"
	"qna_workspace/internal/authctx"
	"qna_workspace/services"
)

type SessionHandler struct {
	Svc *services.SessionService
}

// GET /sessions
// @Summary Live sessions that are active and have participants
// @Tags sessions
// @Produce json
// @Success 200 {array} model.LiveSession
// @Router /sessions [get]
func (h *SessionHandler) List(c *fiber.Ctx) error {
	sessions, err := h.Svc.List(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(sessions)
}

// POST /sessions
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	var body dto.CreateSessionReq
	if err := parseBody(c, &body); err != nil {
		return respondErr(c, err)
	}
	session, err := h.Svc.Create(c.Context(), viewer, body.Title)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// POST /sessions/:sessionId/join
func (h *SessionHandler) Join(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "sessionId")
	if err != nil {
		return respondErr(c, err)
	}
	if err := h.Svc.Join(c.Context(), viewer, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// POST /sessions/:sessionId/leave
func (h *SessionHandler) Leave(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "sessionId")
	if err != nil {
		return respondErr(c, err)
	}
	if err := h.Svc.Leave(c.Context(), viewer, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// GET /sessions/:sessionId/messages
func (h *SessionHandler) Messages(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "sessionId")
	if err != nil {
		return respondErr(c, err)
	}
	messages, err := h.Svc.Messages(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(messages)
}

// POST /sessions/:sessionId/messages
// Blank or whitespace-only text is dropped without an error, mirroring the
// send box behavior in the UI.
func (h *SessionHandler) SendMessage(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "sessionId")
	if err != nil {
		return respondErr(c, err)
	}
	var body dto.SendMessageReq
	if err := parseBody(c, &body); err != nil {
		return respondErr(c, err)
	}
	msg, sent := h.Svc.SendMessage(c.Context(), viewer, id, body.Text)
	if !sent {
		return c.Status(fiber.StatusAccepted).JSON(dto.OkResponse{Ok: false})
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
