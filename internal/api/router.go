package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(h *Handler, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()

	// Site content.
	r.Get("/site", h.GetSite)
	r.Get("/profile", h.GetProfile)
	r.Get("/sections", h.ListSections)
	r.Get("/projects", h.ListProjects)
	r.Get("/skills", h.ListSkills)
	r.Get("/experience", h.ListExperience)
	r.Get("/contact-info", h.GetContactInfo)

	// Scroll tracking and animation triggers.
	r.Post("/scroll", h.ReportScroll)
	r.Get("/section", h.GetSection)
	r.Delete("/views/{view}", h.DropView)

	// Contact submission.
	r.Post("/contact", h.SubmitContact)

	// Notification slot.
	r.Get("/notification", h.GetNotification)
	r.Delete("/notification", h.DismissNotification)

	// Theme preference.
	r.Get("/theme", h.GetTheme)
	r.Put("/theme", h.PutTheme)

	// SSE endpoint.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
