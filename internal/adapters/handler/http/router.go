package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(
	pollHandler *PollHandler,
	responseHandler *ResponseHandler,
	categoryHandler *CategoryHandler,
	userHandler *UserHandler,
	jwtSecret []byte,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	auth := AuthMiddleware(jwtSecret)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Route("/polls", func(r chi.Router) {
			// Poll creation is an owner action; responding is open to
			// anyone with the link, identified only by a typed name.
			r.With(auth).Post("/", pollHandler.CreatePoll)
			r.Get("/", pollHandler.ListPolls)
			r.Get("/{id}", pollHandler.GetPoll)

			r.Get("/{id}/blank-response", responseHandler.BlankGrid)
			r.Get("/{id}/aggregate", responseHandler.GetAggregate)
			r.Get("/{id}/responses", responseHandler.GetResponses)
			r.Get("/{id}/responses/stream", responseHandler.StreamResponses)
			r.Put("/{id}/responses/{respondent}", responseHandler.SubmitResponse)
			r.Delete("/{id}/responses/{respondent}", responseHandler.DeleteResponse)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", categoryHandler.ListCategories)
			r.Post("/", categoryHandler.CreateCategory)
			r.Delete("/{id}", categoryHandler.DeleteCategory)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(auth)
			r.Get("/me", userHandler.GetMe)
		})
	})

	return r
}
