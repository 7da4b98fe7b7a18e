package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/contact"
	"github.com/starford/ansuz/internal/content"
	"github.com/starford/ansuz/internal/notify"
	"github.com/starford/ansuz/internal/prefs"
	"github.com/starford/ansuz/internal/sse"
	"github.com/starford/ansuz/internal/tracker"
)

// revealStart mirrors the frontend animation default: a section's entrance
// animation plays once its top edge passes 80% of the viewport height.
const revealStart = 0.8

// Handler holds API route handlers.
type Handler struct {
	store    *content.Store
	track    *tracker.Tracker
	registry *tracker.Registry
	pipeline *contact.Pipeline
	slot     *notify.Slot
	prefs    *prefs.Store
	broker   *sse.Broker
}

// NewHandler creates a new Handler.
func NewHandler(store *content.Store, track *tracker.Tracker, registry *tracker.Registry,
	pipeline *contact.Pipeline, slot *notify.Slot, prefStore *prefs.Store, broker *sse.Broker) *Handler {
	return &Handler{
		store:    store,
		track:    track,
		registry: registry,
		pipeline: pipeline,
		slot:     slot,
		prefs:    prefStore,
		broker:   broker,
	}
}

// GetSite handles GET /api/site.
func (h *Handler) GetSite(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Site())
}

// GetProfile handles GET /api/profile.
func (h *Handler) GetProfile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Profile())
}

// ListSections handles GET /api/sections.
func (h *Handler) ListSections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sections": h.store.Sections()})
}

// ListProjects handles GET /api/projects.
func (h *Handler) ListProjects(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"projects": h.store.Site().Projects})
}

// ListSkills handles GET /api/skills.
func (h *Handler) ListSkills(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"skills": h.store.Site().Skills})
}

// ListExperience handles GET /api/experience.
func (h *Handler) ListExperience(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"experience": h.store.Site().Experience})
}

// GetContactInfo handles GET /api/contact-info.
func (h *Handler) GetContactInfo(w http.ResponseWriter, _ *http.Request) {
	site := h.store.Site()
	writeJSON(w, http.StatusOK, ContactInfoResponse{
		Channels: site.Channels,
		Social:   site.Social,
	})
}

// ReportScroll handles POST /api/scroll. Each report re-evaluates the
// tracker against the freshly measured geometry and fires any armed
// animation triggers for the reporting view.
func (h *Handler) ReportScroll(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ScrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	// First report from a view arms the default reveal trigger per section.
	if !h.registry.Has(req.View) {
		for _, s := range req.Sections {
			h.registry.Register(req.View, s.ID+"-reveal", s.ID, tracker.Reveal(revealStart))
		}
	}

	section, changed := h.track.Evaluate(req.Sections, req.Y)
	cues := h.registry.Fire(req.View, req.Y, req.ViewportHeight, req.Sections)
	if h.broker != nil {
		for _, target := range cues {
			h.broker.Publish(sse.Event{Type: "cue.triggered", Data: map[string]string{"target": target}})
		}
	}
	if cues == nil {
		cues = []string{}
	}

	writeJSON(w, http.StatusOK, ScrollResponse{
		Section: section,
		Changed: changed,
		Cues:    cues,
	})
}

// GetSection handles GET /api/section.
func (h *Handler) GetSection(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SectionResponse{Section: h.track.Current()})
}

// DropView handles DELETE /api/views/{view}: tears down every animation
// trigger the view registered.
func (h *Handler) DropView(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	if view == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("view is required"))
		return
	}
	h.registry.DropView(view)
	w.WriteHeader(http.StatusNoContent)
}

// SubmitContact handles POST /api/contact.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	err := h.pipeline.Submit(r.Context(), req.ToMessage())
	resp := ContactResponse{
		Status:       string(h.pipeline.Status()),
		Notification: h.slot.Current(),
	}

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, apperr.ErrBusy):
		writeJSON(w, http.StatusConflict, errorBody(apperr.ErrBusy.Error()))
	case errors.Is(err, apperr.ErrNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, resp)
	default:
		var vErr *contact.ValidationError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusBadRequest, resp)
			return
		}
		var dErr *contact.DeliveryError
		if errors.As(err, &dErr) {
			slog.Error("contact delivery failed", slog.String("error", dErr.Err.Error()))
			writeJSON(w, http.StatusBadGateway, resp)
			return
		}
		slog.Error("contact submit failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// GetNotification handles GET /api/notification.
func (h *Handler) GetNotification(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.slot.Current())
}

// DismissNotification handles DELETE /api/notification.
func (h *Handler) DismissNotification(w http.ResponseWriter, _ *http.Request) {
	h.slot.Dismiss()
	w.WriteHeader(http.StatusNoContent)
}

// GetTheme handles GET /api/theme.
func (h *Handler) GetTheme(w http.ResponseWriter, _ *http.Request) {
	dark, err := h.prefs.Theme()
	if err != nil {
		slog.Error("theme read failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ThemeBody{Dark: dark})
}

// PutTheme handles PUT /api/theme.
func (h *Handler) PutTheme(w http.ResponseWriter, r *http.Request) {
	var body ThemeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.prefs.SetTheme(body.Dark); err != nil {
		slog.Error("theme write failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, body)
}
