package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/categories", handler.ListCategories)
	mux.HandleFunc("GET /v1/categories/{categoryID}", handler.GetCategory)
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/clubs/{clubID}", handler.GetClub)
}
