package names

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/z-names/backend/internal/model/name"
	namesService "github.com/zhouzirui/z-names/backend/internal/service/names"
	"github.com/zhouzirui/z-names/backend/pkg/utils"
)

// Service is the subset of the names service used over HTTP.
type Service interface {
	Load(ctx context.Context) (name.List, error)
	ToggleLike(ctx context.Context, uid string) (name.List, error)
	ToggleUsed(ctx context.Context, uid string) (name.List, error)
}

// Handler names服务的HTTP处理器
type Handler struct {
	svc Service
	hub *Hub
}

// New creates a names handler. hub may be nil to disable the live feed.
func New(svc Service, hub *Hub) *Handler {
	return &Handler{svc: svc, hub: hub}
}

// RegisterRoutes 注册names相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/names", h.handleList)
	r.Post("/names/{uid}/like", h.handleToggle(h.svc.ToggleLike))
	r.Post("/names/{uid}/used", h.handleToggle(h.svc.ToggleUsed))
	if h.hub != nil {
		r.Get("/names/ws", h.hub.ServeHTTP)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Load(r.Context())
	if err != nil {
		respondServiceError(w, "load", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) handleToggle(toggle func(context.Context, string) (name.List, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := chi.URLParam(r, "uid")

		list, err := toggle(r.Context(), uid)
		if err != nil {
			respondServiceError(w, "toggle", err)
			return
		}

		if h.hub != nil {
			h.hub.Broadcast(list)
		}
		utils.RespondJSON(w, http.StatusOK, list)
	}
}

func respondServiceError(w http.ResponseWriter, op string, err error) {
	var transportErr *namesService.TransportError
	switch {
	case errors.Is(err, namesService.ErrUIDRequired):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &transportErr):
		log.Printf("[names] %s failed: %v", op, err)
		utils.RespondError(w, http.StatusBadGateway, "name source unavailable")
	default:
		log.Printf("[names] %s failed: %v", op, err)
		utils.RespondError(w, http.StatusInternalServerError, "names unavailable")
	}
}
