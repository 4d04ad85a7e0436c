package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	_ "qna_workspace/docs"

	"qna_workspace/bootstrap"
	"qna_workspace/database"
	"qna_workspace/internal/handlers"
	"qna_workspace/internal/logger"
	"qna_workspace/internal/middleware"
	"qna_workspace/internal/repository"
	"qna_workspace/internal/routes"
	"qna_workspace/internal/watch"
	"qna_workspace/services"
)

func init() {
	// Overload so a local .env wins over stale shell exports during dev.
	_ = godotenv.Overload()
}

func main() {
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set in environment")
	}

	logg := logger.NewLogger("qna-api")

	client := database.ConnectMongo()
	defer database.DisconnectMongo(client)
	db := database.DB(client)

	if err := bootstrap.EnsureIndexes(db); err != nil {
		log.Fatal("Failed to ensure indexes:", err)
	}

	rdb := database.ConnectRedis()

	// --- Repositories ---
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	notiRepo := repository.NewNotificationRepository(db)

	// --- In-process fanout ---
	hub := watch.NewHub()
	cache := watch.NewQuestionCache()

	// --- Services ---
	points := &services.PointsService{Users: userRepo, Log: logg}
	notis := &services.NotificationService{Store: notiRepo, Hub: hub, Log: logg}
	questionSvc := &services.QuestionService{
		Store:  questionRepo,
		Index:  answerRepo,
		Points: points,
		Noti:   notis,
		Cache:  cache,
		Hub:    hub,
		Log:    logg,
	}
	bookmarkSvc := services.NewBookmarkService(userRepo, questionRepo, logg)
	sessionSvc := &services.SessionService{Store: sessionRepo, Hub: hub, Log: logg}
	leaderboardSvc := &services.LeaderboardService{Users: userRepo, Redis: rdb, Log: logg}
	authSvc := &services.AuthService{Users: userRepo}

	// --- Fiber App Setup ---
	app := fiber.New()
	app.Use(logger.RequestLogger(logg))
	app.Use(middleware.JWTViewer())

	// Swagger docs
	app.Get("/docs/*", swagger.HandlerDefault)

	routes.Register(app, routes.Deps{
		Auth:          &handlers.AuthHandler{Svc: authSvc},
		Questions:     &handlers.QuestionHandler{Svc: questionSvc},
		Answers:       &handlers.AnswerHandler{Svc: questionSvc},
		Bookmarks:     &handlers.BookmarkHandler{Svc: bookmarkSvc},
		Sessions:      &handlers.SessionHandler{Svc: sessionSvc},
		Leaderboard:   &handlers.LeaderboardHandler{Svc: leaderboardSvc},
		Notifications: &handlers.NotificationHandler{Svc: notis},
		Users:         &handlers.UserHandler{Users: userRepo, Answers: answerRepo},
		WS:            &handlers.WSHandler{Hub: hub, Log: logg},
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Fatal(app.Listen(":" + port))
}
