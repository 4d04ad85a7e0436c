package handlers

import (
	"github.com/gofiber/fiber/v2"

	"qna_workspace/dto"
	"qna_workspace/internal/authctx"
	"qna_workspace/services"
)

type BookmarkHandler struct {
	Svc *services.BookmarkService
}

// GET /bookmarks
// @Summary List the caller's bookmarked questions
// @Tags bookmarks
// @Produce json
// @Success 200 {array} model.Question
// @Router /bookmarks [get]
func (h *BookmarkHandler) List(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	questions, err := h.Svc.Materialize(c.Context(), uid)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(questions)
}

// GET /bookmarks/ids
func (h *BookmarkHandler) ListIDs(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	ids, err := h.Svc.IDs(c.Context(), uid)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"ids": ids})
}

// PUT /bookmarks/:questionId
func (h *BookmarkHandler) Add(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "questionId")
	if err != nil {
		return respondErr(c, err)
	}
	if err := h.Svc.Add(c.Context(), uid, id.Hex()); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// DELETE /bookmarks/:questionId
func (h *BookmarkHandler) Remove(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "questionId")
	if err != nil {
		return respondErr(c, err)
	}
	if err := h.Svc.Remove(c.Context(), uid, id.Hex()); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}
