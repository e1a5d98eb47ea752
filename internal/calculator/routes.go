package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix. Session state lives in store.
func RegisterRoutes(r chi.Router, store *SessionStore) {
	sessions := NewSessions(store)

	r.Route("/calculator", func(r chi.Router) {
		r.Post("/add", Add)
		r.Post("/subtract", Subtract)
		r.Post("/multiply", Multiply)
		r.Post("/divide", Divide)
		r.Post("/replay", ReplayEvents)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessions.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessions.Get)
				r.Delete("/", sessions.Delete)
				r.Put("/first", sessions.SetFirst)
				r.Put("/second", sessions.SetSecond)
				r.Post("/compute/{op}", sessions.Compute)
			})
		})
	})
}
