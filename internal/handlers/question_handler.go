package handlers

import (
	"github.com/gofiber/fiber/v2"

	config "qna_workspace/configs"
	"qna_workspace/dto"
	"qna_workspace/internal/authctx"
	"qna_workspace/services"
)

type QuestionHandler struct {
	Svc *services.QuestionService
}

// GET /questions?tag=science&limit=50
// @Summary List questions, newest first
// @Param tag query string false "case-insensitive tag filter"
// @Success 200 {array} model.Question
// @Router /questions [get]
func (h *QuestionHandler) List(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", config.DefaultLimitQuestions))
	if limit <= 0 {
		limit = config.DefaultLimitQuestions
	}
	if limit > config.MaxLimitQuestions {
		limit = config.MaxLimitQuestions
	}

	questions, err := h.Svc.ListQuestions(c.Context(), c.Query("tag"), limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(questions)
}

// GET /questions/:questionId
func (h *QuestionHandler) Get(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "questionId")
	if err != nil {
		return respondErr(c, err)
	}
	q, err := h.Svc.GetQuestion(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(q)
}

// POST /questions
// @Summary Post a question
// @Success 201 {object} model.Question
// @Router /questions [post]
func (h *QuestionHandler) Create(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	var body dto.CreateQuestionReq
	if err := parseBody(c, &body); err != nil {
		return respondErr(c, err)
	}
	q, err := h.Svc.AddQuestion(c.Context(), viewer, body.Title, body.Tags)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(q)
}

// PATCH /questions/:questionId
func (h *QuestionHandler) Update(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "questionId")
	if err != nil {
		return respondErr(c, err)
	}
	var body dto.UpdateQuestionReq
	if err := parseBody(c, &body); err != nil {
		return respondErr(c, err)
	}
	q, err := h.Svc.EditQuestion(c.Context(), viewer, id, body.Title, body.Tags)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(q)
}

// DELETE /questions/:questionId
func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "questionId")
	if err != nil {
		return respondErr(c, err)
	}
	if err := h.Svc.DeleteQuestion(c.Context(), viewer, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}
