package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/z-names/backend/internal/handler/names"
	middlewarePkg "github.com/zhouzirui/z-names/backend/internal/middleware"
	"github.com/zhouzirui/z-names/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
// hub may be nil; dataDir may be empty to disable static payload serving.
func NewRouter(namesSvc names.Service, hub *names.Hub, dataDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	namesHandler := names.New(namesSvc, hub)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		namesHandler.RegisterRoutes(api)
	})

	// The default name source fetches /data/names.json from here.
	if dataDir != "" {
		r.Handle("/data/*", http.StripPrefix("/data/", http.FileServer(http.Dir(dataDir))))
	}

	return r
}
