package handlers

import (
	"github.com/gofiber/fiber/v2"

	"qna_workspace/dto"
	"qna_workspace/internal/authctx"
	"qna_workspace/services"
)

// AnswerHandler covers every nested-thread mutation below a question:
// answers, comments, replies, votes and the accepted mark. Elements are
// addressed by their position in the rendered thread; the service resolves
// the position to a stable element id before touching the backend.
type AnswerHandler struct {
	Svc *services.QuestionService
}

func answerIdx(c *fiber.Ctx) (int, error) {
	idx, err := c.ParamsInt("answerIdx")
	if err != nil || idx < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid answer index")
	}
	return idx, nil
}

// POST /questions/:questionId/answers
func (h *AnswerHandler) Create(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "questionId")
	if err != nil {
		return respondErr(c, err)
	}
	var body dto.CreateAnswerReq
	if err := parseBody(c, &body); err != nil {
		return respondErr(c, err)
	}
	ans, err := h.Svc.AddAnswer(c.Context(), viewer, id, body.Text)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ans)
}

// PATCH /questions/:questionId/answers/:answerIdx
func (h *AnswerHandler) Update(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "questionId")
	if err != nil {
		return respondErr(c, err)
	}
	idx, err := answerIdx(c)
	if err != nil {
		return respondErr(c, err)
	}
	var body dto.UpdateAnswerReq
	if err := parseBody(c, &body); err != nil {
		return respondErr(c, err)
	}
	if err := h.Svc.EditAnswer(c.Context(), viewer, id, idx, body.Text); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// DELETE /questions/:questionId/answers/:answerIdx
func (h *AnswerHandler) Delete(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "questionId")
	if err != nil {
		return respondErr(c, err)
	}
	idx, err := answerIdx(c)
	if err != nil {
		return respondErr(c, err)
	}
	if err := h.Svc.DeleteAnswer(c.Context(), viewer, id, idx); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// POST /questions/:questionId/answers/:answerIdx/accept
func (h *AnswerHandler) Accept(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "questionId")
	if err != nil {
		return respondErr(c, err)
	}
	idx, err := answerIdx(c)
	if err != nil {
		return respondErr(c, err)
	}
	if err := h.Svc.MarkAccepted(c.Context(), viewer, id, idx); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// POST /questions/:questionId/answers/:answerIdx/vote
func (h *AnswerHandler) Vote(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "questionId")
	if err != nil {
		return respondErr(c, err)
	}
	idx, err := answerIdx(c)
	if err != nil {
		return respondErr(c, err)
	}
	var body dto.VoteReq
	if err := parseBody(c, &body); err != nil {
		return respondErr(c, err)
	}

	res, err := h.Svc.Vote(c.Context(), viewer, id, idx, body.Direction)
	if err != nil {
		return respondErr(c, err)
	}

	q, err := h.Svc.GetQuestion(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	votes := 0
	if idx < len(q.Answers) {
		votes = q.Answers[idx].Votes
	}
	return c.JSON(dto.VoteResp{Votes: votes, MyVote: res.Current, Previous: res.Previous})
}

// POST /questions/:questionId/answers/:answerIdx/comments
func (h *AnswerHandler) CreateComment(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "questionId")
	if err != nil {
		return respondErr(c, err)
	}
	idx, err := answerIdx(c)
	if err != nil {
		return respondErr(c, err)
	}
	var body dto.CreateCommentReq
	if err := parseBody(c, &body); err != nil {
		return respondErr(c, err)
	}
	com, err := h.Svc.AddComment(c.Context(), viewer, id, idx, body.Text)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(com)
}

// POST /questions/:questionId/answers/:answerIdx/comments/:commentIdx/replies
func (h *AnswerHandler) CreateReply(c *fiber.Ctx) error {
	viewer, ok := authctx.ViewerFrom(c)
	if !ok {
		return respondErr(c, services.ErrUnauthenticated)
	}
	id, err := objectIDParam(c, "questionId")
	if err != nil {
		return respondErr(c, err)
	}
	idx, err := answerIdx(c)
	if err != nil {
		return respondErr(c, err)
	}
	commentIdx, err := c.ParamsInt("commentIdx")
	if err != nil || commentIdx < 0 {
		return respondErr(c, fiber.NewError(fiber.StatusBadRequest, "invalid comment index"))
	}
	var body dto.CreateReplyReq
	if err := parseBody(c, &body); err != nil {
		return respondErr(c, err)
	}
	reply, err := h.Svc.AddReply(c.Context(), viewer, id, idx, commentIdx, body.Text)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}
