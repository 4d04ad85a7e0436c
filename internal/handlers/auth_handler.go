package handlers

import (
	"github.com/gofiber/fiber/v2"

	"qna_workspace/dto"
	"qna_workspace/services"
)

type AuthHandler struct {
	Svc *services.AuthService
}

// POST /auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body dto.SignupReq
	if err := parseBody(c, &body); err != nil {
		return respondErr(c, err)
	}
	res, err := h.Svc.Signup(c.Context(), body.Username, body.Email, body.Password)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body dto.LoginReq
	if err := parseBody(c, &body); err != nil {
		return respondErr(c, err)
	}
	res, err := h.Svc.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(res)
}
