package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dealdrop/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/deals", func(r chi.Router) {
				r.Get("/", handler(s.getV1Deals))
				r.Get("/{id}", handler(s.getV1Deal))
				r.Post("/{id}/unlock", handler(s.postV1DealUnlock))
			})

			r.Get("/platforms", handler(s.getV1Platforms))

			r.Route("/checkout/sessions/{orderId}", func(r chi.Router) {
				r.Get("/", handler(s.getV1CheckoutSession))
				r.Post("/outcome", handler(s.postV1CheckoutOutcome))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
