package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"devdeck/internal/card"
	platformmetrics "devdeck/internal/platform/metrics"
	"devdeck/internal/platform/middleware"
	id "devdeck/pkg/domain"
	dErrors "devdeck/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/card-mocks.go -package=mocks Service

// Service defines the interface for card registry operations.
type Service interface {
	Create(ctx context.Context, caller id.AccountID, input card.NewCardInput, payment int64) (id.CardID, error)
	UpdateDescription(ctx context.Context, caller id.AccountID, cardID id.CardID, description string) error
	UpdatePortfolio(ctx context.Context, caller id.AccountID, cardID id.CardID, portfolio string) error
	Deactivate(ctx context.Context, caller id.AccountID, cardID id.CardID) error
	Get(ctx context.Context, cardID id.CardID) (card.View, error)
}

// Handler handles card registry endpoints. It delegates to the card service
// without embedding business logic so transport concerns remain isolated.
type Handler struct {
	logger       *slog.Logger
	cards        Service
	metrics      *platformmetrics.Metrics
	jwtValidator middleware.JWTValidator
}

// New creates a new card Handler.
func New(
	cards Service,
	logger *slog.Logger,
	metrics *platformmetrics.Metrics,
	jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		cards:        cards,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register registers the card routes with the chi router. Reads are public;
// every mutation sits behind JWT auth so the caller identity the registry
// authorizes against is always an authenticated one.
func (h *Handler) Register(r chi.Router) {
	public := chi.NewRouter()
	public.Use(middleware.Recovery(h.logger))
	public.Use(middleware.RequestID)
	public.Use(middleware.Logger(h.logger))
	public.Use(middleware.Timeout(10 * time.Second))
	public.Use(middleware.LatencyMiddleware(h.metrics))
	public.Get("/cards/{id}", h.handleGetCard)

	authed := chi.NewRouter()
	authed.Use(middleware.Recovery(h.logger))
	authed.Use(middleware.RequestID)
	authed.Use(middleware.Logger(h.logger))
	authed.Use(middleware.Timeout(10 * time.Second))
	authed.Use(middleware.ContentTypeJSON)
	authed.Use(middleware.LatencyMiddleware(h.metrics))
	authed.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	authed.Post("/cards", h.handleCreateCard)
	authed.Put("/cards/{id}/description", h.handleUpdateDescription)
	authed.Put("/cards/{id}/portfolio", h.handleUpdatePortfolio)
	authed.Post("/cards/{id}/deactivate", h.handleDeactivate)

	r.Mount("/", public)
	r.Mount("/v1", authed)
}

func (h *Handler) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid create card request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	cardID, err := h.cards.Create(ctx, caller, card.NewCardInput{
		Name:              req.Name,
		Title:             req.Title,
		ImageURL:          req.ImageURL,
		Technologies:      req.Technologies,
		Portfolio:         req.Portfolio,
		Contact:           req.Contact,
		YearsOfExperience: req.YearsOfExperience,
	}, req.Payment)
	if err != nil {
		h.logError(ctx, "failed to create card", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateCardResponse{ID: cardID})
}

func (h *Handler) handleGetCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cardID, ok := h.cardID(w, r)
	if !ok {
		return
	}

	view, err := h.cards.Get(ctx, cardID)
	if err != nil {
		h.logError(ctx, "failed to get card", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleUpdateDescription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	cardID, ok := h.cardID(w, r)
	if !ok {
		return
	}

	var req UpdateDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.cards.UpdateDescription(ctx, caller, cardID, req.Description); err != nil {
		h.logError(ctx, "failed to update description", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	cardID, ok := h.cardID(w, r)
	if !ok {
		return
	}

	var req UpdatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.cards.UpdatePortfolio(ctx, caller, cardID, req.Portfolio); err != nil {
		h.logError(ctx, "failed to update portfolio", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	cardID, ok := h.cardID(w, r)
	if !ok {
		return
	}

	if err := h.cards.Deactivate(ctx, caller, cardID); err != nil {
		h.logError(ctx, "failed to deactivate card", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// caller reads the authenticated account from context. The auth middleware
// guarantees it is set on mutating routes; a miss is a wiring bug.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (id.AccountID, bool) {
	caller := middleware.GetAccountID(r.Context())
	if caller.IsNil() {
		h.logger.ErrorContext(r.Context(), "account ID missing from context despite auth middleware",
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return id.AccountID{}, false
	}
	return caller, true
}

func (h *Handler) cardID(w http.ResponseWriter, r *http.Request) (id.CardID, bool) {
	cardID, err := id.ParseCardID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid card id"))
		return 0, false
	}
	return cardID, true
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	code := dErrors.CodeOf(err)
	if code == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		return
	}
	h.logger.WarnContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"code", string(code),
	)
}
