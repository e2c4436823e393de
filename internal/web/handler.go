package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"crowdfund/internal/domain"
)

// Campaigns is the read side of the campaign service.
type Campaigns interface {
	Home(ctx context.Context) (domain.HomeProps, error)
	Summary(ctx context.Context, campaign domain.Address) (domain.CampaignSummary, error)
}

// Handler serves the pages and the JSON endpoint.
type Handler struct {
	campaigns Campaigns
	log       *zap.Logger
	mux       *http.ServeMux
}

// NewHandler returns the site handler. log may be nil.
func NewHandler(c Campaigns, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{campaigns: c, log: log, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /{$}", h.home)
	h.mux.HandleFunc("GET /campaigns/{address}", h.summary)
	h.mux.HandleFunc("GET /api/campaigns", h.apiCampaigns)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) { h.mux.ServeHTTP(w, r) }

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	props, err := h.campaigns.Home(r.Context())
	if err != nil {
		h.fail(w, "list campaigns", err)
		return
	}
	h.render(w, r, HomePage(props))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(r.PathValue("address"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, err := h.campaigns.Summary(r.Context(), addr)
	if err != nil {
		h.fail(w, "campaign summary", err)
		return
	}
	h.render(w, r, SummaryPage(addr, s))
}

func (h *Handler) apiCampaigns(w http.ResponseWriter, r *http.Request) {
	props, err := h.campaigns.Home(r.Context())
	if err != nil {
		h.fail(w, "list campaigns", err)
		return
	}
	if props.Campaigns == nil {
		props.Campaigns = []domain.Address{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(props); err != nil {
		h.log.Warn("write campaigns", zap.Error(err))
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		h.log.Warn("render page", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

// fail reports upstream errors as 502, except calls that reach no contract
// or one that rejects the read, which are 404.
func (h *Handler) fail(w http.ResponseWriter, what string, err error) {
	h.log.Error(what, zap.Error(err))
	status := http.StatusBadGateway
	if errors.Is(err, domain.ErrNoContract) || errors.Is(err, domain.ErrRevert) {
		status = http.StatusNotFound
	}
	http.Error(w, what+": "+err.Error(), status)
}
