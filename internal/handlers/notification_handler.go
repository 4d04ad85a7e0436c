package handlers

import (
	"github.com/gofiber/fiber/v2"

	config "qna_workspace/configs"
	"qna_workspace/dto"
	"qna_workspace/internal/authctx"
	"qna_workspace/services"
)

type NotificationHandler struct {
	Svc *services.NotificationService
}

// GET /notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	limit := int64(c.QueryInt("limit", config.DefaultLimitNotifications))
	if limit <= 0 || limit > config.DefaultLimitNotifications {
		limit = config.DefaultLimitNotifications
	}
	items, err := h.Svc.List(c.Context(), uid, limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(items)
}

// POST /notifications/:notificationId/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "notificationId")
	if err != nil {
		return respondErr(c, err)
	}
	if err := h.Svc.MarkRead(c.Context(), uid, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}
