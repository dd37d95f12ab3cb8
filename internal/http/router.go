package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/budgetsync/internal/http/category"
	"github.com/MrJamesThe3rd/budgetsync/internal/http/importcsv"
)

func New(
	importV1 *importcsv.Handler,
	categoriesV1 *category.Handler,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/import", func(r chi.Router) {
			r.Use(middleware.AllowContentType("multipart/form-data"))
			importV1.Routes(r)
		})

		r.Route("/categories", categoriesV1.Routes)
	})

	return router
}
