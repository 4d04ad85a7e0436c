package handlers

import (
	"github.com/gofiber/fiber/v2"

	config "qna_workspace/configs"
	"qna_workspace/internal/authctx"
	"qna_workspace/internal/repository"
	"qna_workspace/services"
)

type UserHandler struct {
	Users   *repository.UserRepository
	Answers *repository.AnswerRepository
}

// GET /users/me
// @Summary Profile of the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	user, err := h.Users.GetByUID(c.Context(), uid)
	if err != nil {
		return respondErr(c, err)
	}
	user.PasswordHash = ""
	return c.JSON(user)
}

// GET /users/:uid
func (h *UserHandler) Get(c *fiber.Ctx) error {
	uid := c.Params("uid")
	user, err := h.Users.GetByUID(c.Context(), uid)
	if err != nil {
		return respondErr(c, err)
	}
	user.PasswordHash = ""
	user.Email = ""
	return c.JSON(user)
}

// GET /users/:uid/answers
func (h *UserHandler) Answered(c *fiber.Ctx) error {
	uid := c.Params("uid")
	limit := int64(c.QueryInt("limit", config.DefaultLimitAnswersByAuthor))
	if limit <= 0 || limit > config.DefaultLimitAnswersByAuthor {
		limit = config.DefaultLimitAnswersByAuthor
	}
	rows, err := h.Answers.ListByAuthor(c.Context(), uid, limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(rows)
}
