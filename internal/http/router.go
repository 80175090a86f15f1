package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sprasadik2010/vantage-system-sub000/internal/http/batchapi"
	"github.com/sprasadik2010/vantage-system-sub000/internal/http/distribution"
	"github.com/sprasadik2010/vantage-system-sub000/internal/http/lookup"
)

func New(
	distributionV1 *distribution.Handler,
	batchV1 *batchapi.Handler,
	lookupV1 *lookup.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/distributions", func(r chi.Router) {
			distributionV1.Routes(r)
		})

		r.Route("/batches", batchV1.Routes)

		r.Route("/users", func(r chi.Router) {
			lookupV1.Routes(r)
		})
	})

	return router
}
