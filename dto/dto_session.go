package dto

type CreateSessionReq struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

type SendMessageReq struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}
