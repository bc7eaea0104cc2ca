package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/federated-matches/internal/domain/federation"
	"github.com/riskibarqy/federated-matches/internal/platform/logging"
	"github.com/riskibarqy/federated-matches/internal/usecase"
)

type Handler struct {
	matchService   *usecase.MatchService
	catalogService *usecase.CatalogService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	catalogService *usecase.CatalogService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:   matchService,
		catalogService: catalogService,
		logger:         logger,
		validator:      validator.New(),
	}
}

type listMatchesRequest struct {
	Period   string `validate:"omitempty,oneof=future next 1 past previous -1"`
	Category string `validate:"omitempty,max=64,printascii"`
	Club     string `validate:"omitempty,max=64,printascii"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	req := listMatchesRequest{
		Period:   strings.ToLower(strings.TrimSpace(query.Get("period"))),
		Category: strings.TrimSpace(query.Get("category")),
		Club:     strings.TrimSpace(query.Get("club")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	period, ok := federation.ParsePeriod(req.Period)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown period %q", usecase.ErrInvalidInput, req.Period))
		return
	}

	views, err := h.matchService.List(ctx, federation.Filter{
		Period:     period,
		CategoryID: req.Category,
		ClubID:     req.Club,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed",
			"period", period.String(),
			"category", req.Category,
			"club", req.Club,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(views))
	for _, view := range views {
		items = append(items, matchViewToDTO(view))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategories")
	defer span.End()

	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list categories failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]categoryDTO, 0, len(categories))
	for _, item := range categories {
		items = append(items, categoryDTO{ID: item.ID, Name: item.Name, Gender: item.Gender})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	clubs, err := h.catalogService.ListClubs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]clubDTO, 0, len(clubs))
	for _, item := range clubs {
		items = append(items, clubDTO{ID: item.ID, Name: item.Name})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCategory")
	defer span.End()

	categoryID := r.PathValue("categoryID")
	item, err := h.catalogService.GetCategory(ctx, categoryID)
	if err != nil {
		h.logger.WarnContext(ctx, "get category failed", "category_id", categoryID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, categoryDTO{ID: item.ID, Name: item.Name, Gender: item.Gender})
}

func (h *Handler) GetClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClub")
	defer span.End()

	clubID := r.PathValue("clubID")
	item, err := h.catalogService.GetClub(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "get club failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, clubDTO{ID: item.ID, Name: item.Name})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
