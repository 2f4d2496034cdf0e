package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/imsosorrybutiloveyou/Girok/internal/handlers"
	"github.com/imsosorrybutiloveyou/Girok/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Profile    *handlers.ProfileHandler
	Diary      *handlers.DiaryHandler
	Engagement *handlers.EngagementHandler
	Question   *handlers.QuestionHandler
	Recommend  *handlers.RecommendHandler
	Notice     *handlers.NoticeHandler
	Admin      *handlers.AdminHandler
}

// Setup mounts the API. Identity comes from the session middleware; routes
// that mutate require a user, the admin group requires the admin role.
func Setup(r *chi.Mux, h Handlers) {
	r.Route("/api", func(api chi.Router) {
		// Auth
		api.Post("/register", h.Auth.Register)
		api.Post("/login", h.Auth.Login)
		api.Post("/logout", h.Auth.Logout)
		api.Get("/user/info/{username}", h.Auth.UserInfo)

		// Public reads (anonymous allowed)
		api.Get("/diaries", h.Diary.List)
		api.Get("/comments/{diary_id}", h.Engagement.ListComments)
		api.Get("/questions", h.Question.List)
		api.Get("/answers/{question_id}", h.Question.Answers)
		api.Get("/recommends", h.Recommend.List)
		api.Get("/notices", h.Notice.Latest)

		// Authenticated
		api.Group(func(auth chi.Router) {
			auth.Use(middleware.RequireUser)

			auth.Post("/profile/update", h.Profile.Update)
			auth.Post("/diary", h.Diary.Create)
			auth.Put("/diary/{id}", h.Diary.Update)
			auth.Delete("/diary/{id}", h.Diary.Delete)
			auth.Post("/diary/like", h.Engagement.ToggleLike)
			auth.Post("/comment", h.Engagement.AddComment)
			auth.Get("/questions/history", h.Question.History)
			auth.Post("/answer", h.Question.SubmitAnswer)
			auth.Post("/recommend", h.Recommend.Create)
		})

		// Admin
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.RequireAdmin)

			admin.Get("/stats", h.Admin.Stats)
			admin.Get("/users", h.Admin.Users)
			admin.Get("/user/{username}", h.Admin.UserDetail)
			admin.Post("/questions/reserve", h.Admin.ReserveQuestion)
			admin.Delete("/question/{id}", h.Admin.DeleteQuestion)
			admin.Post("/notice", h.Notice.Post)
			admin.Delete("/notice/{id}", h.Notice.Delete)
		})
	})

	// WebSocket feed stream
	r.Get("/ws/feed", handlers.FeedWebSocket)
}
