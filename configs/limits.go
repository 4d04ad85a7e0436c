package configs

// Page-size limits for list endpoints. Callers may pass a smaller ?limit;
// values above the cap are clamped.
const (
	DefaultLimitQuestions = 20
	MaxLimitQuestions     = 100

	DefaultLimitAnswersByAuthor = 50
	DefaultLimitNotifications   = 50
)
