package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler builds the router. Token-protected routes go through requireAuth;
// register and login are rate limited per client IP.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.middlewareStack()...)

	r.Get("/healthz", s.health)

	limited := s.authLimiter()

	r.Route("/api", func(r chi.Router) {
		r.With(limited).Post("/users", s.register)

		r.Route("/auth", func(r chi.Router) {
			r.With(limited).Post("/", s.login)
			r.With(s.requireAuth).Get("/", s.me)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", s.listProfiles)
			r.Get("/user/{user_id}", s.getProfileByUser)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/me", s.getMyProfile)
				r.Post("/", s.upsertProfile)
				r.Delete("/", s.deleteAccount)
				r.Put("/experience", s.addExperience)
				r.Delete("/experience/{exp_id}", s.deleteExperience)
				r.Put("/education", s.addEducation)
				r.Delete("/education/{edu_id}", s.deleteEducation)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.createPost)
			r.Get("/", s.listPosts)
			r.Get("/{id}", s.getPost)
			r.Delete("/{id}", s.deletePost)
			r.Put("/like/{id}", s.likePost)
			r.Put("/unlike/{id}", s.unlikePost)
			r.Post("/comment/{id}", s.addComment)
			r.Delete("/comment/{id}/{comment_id}", s.deleteComment)
		})

		r.With(s.requireAuth).Post("/avatar", s.presignAvatar)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMsg(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMsg(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "ok",
		"request_id": middleware.GetReqID(r.Context()),
	})
}
