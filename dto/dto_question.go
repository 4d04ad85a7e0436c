package dto

type CreateQuestionReq struct {
	Title string   `json:"title" validate:"required,min=1,max=300"`
	Tags  []string `json:"tags"  validate:"max=10,dive,max=40"`
}

type UpdateQuestionReq struct {
	Title string   `json:"title" validate:"omitempty,min=1,max=300"`
	Tags  []string `json:"tags"  validate:"omitempty,max=10,dive,max=40"`
}

type CreateAnswerReq struct {
	Text string `json:"text" validate:"required,min=1,max=10000"`
}

type UpdateAnswerReq struct {
	Text string `json:"text" validate:"required,min=1,max=10000"`
}

type CreateCommentReq struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

type CreateReplyReq struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

// VoteReq carries one click on a vote arrow.
type VoteReq struct {
	Direction int `json:"direction" validate:"required,oneof=-1 1"`
}

type VoteResp struct {
	Votes    int `json:"votes"`
	MyVote   int `json:"myVote"`
	Previous int `json:"previous"`
}
