package routes

import (
	"github.com/gofiber/fiber/v2"

	"qna_workspace/internal/handlers"
	"qna_workspace/internal/middleware"
)

// Deps bundles every handler the router mounts. Wiring happens once in main.
type Deps struct {
	Auth          *handlers.AuthHandler
	Questions     *handlers.QuestionHandler
	Answers       *handlers.AnswerHandler
	Bookmarks     *handlers.BookmarkHandler
	Sessions      *handlers.SessionHandler
	Leaderboard   *handlers.LeaderboardHandler
	Notifications *handlers.NotificationHandler
	Users         *handlers.UserHandler
	WS            *handlers.WSHandler
}

// Register mounts the full API. Reads are public; every mutation sits behind
// RequireAuth.
func Register(app *fiber.App, d Deps) {
	authed := middleware.RequireAuth()

	auth := app.Group("/auth")
	auth.Post("/signup", d.Auth.Signup)
	auth.Post("/login", d.Auth.Login)

	questions := app.Group("/questions")
	questions.Get("/", d.Questions.List)
	questions.Get("/:questionId", d.Questions.Get)
	questions.Post("/", authed, d.Questions.Create)
	questions.Patch("/:questionId", authed, d.Questions.Update)
	questions.Delete("/:questionId", authed, d.Questions.Delete)

	answers := questions.Group("/:questionId/answers")
	answers.Post("/", authed, d.Answers.Create)
	answers.Patch("/:answerIdx", authed, d.Answers.Update)
	answers.Delete("/:answerIdx", authed, d.Answers.Delete)
	answers.Post("/:answerIdx/accept", authed, d.Answers.Accept)
	answers.Post("/:answerIdx/vote", authed, d.Answers.Vote)
	answers.Post("/:answerIdx/comments", authed, d.Answers.CreateComment)
	answers.Post("/:answerIdx/comments/:commentIdx/replies", authed, d.Answers.CreateReply)

	bookmarks := app.Group("/bookmarks", authed)
	bookmarks.Get("/", d.Bookmarks.List)
	bookmarks.Get("/ids", d.Bookmarks.ListIDs)
	bookmarks.Put("/:questionId", d.Bookmarks.Add)
	bookmarks.Delete("/:questionId", d.Bookmarks.Remove)

	sessions := app.Group("/sessions")
	sessions.Get("/", d.Sessions.List)
	sessions.Post("/", authed, d.Sessions.Create)
	sessions.Post("/:sessionId/join", authed, d.Sessions.Join)
	sessions.Post("/:sessionId/leave", authed, d.Sessions.Leave)
	sessions.Get("/:sessionId/messages", d.Sessions.Messages)
	sessions.Post("/:sessionId/messages", authed, d.Sessions.SendMessage)

	app.Get("/leaderboard", d.Leaderboard.List)

	notifications := app.Group("/notifications", authed)
	notifications.Get("/", d.Notifications.List)
	notifications.Post("/:notificationId/read", d.Notifications.MarkRead)

	users := app.Group("/users")
	users.Get("/me", authed, d.Users.Me)
	users.Get("/:uid", d.Users.Get)
	users.Get("/:uid/answers", d.Users.Answered)

	app.Get("/ws", d.WS.Stream())
}
