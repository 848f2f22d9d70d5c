package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gvnetwork/contacts-api/internal/ratelimit"
)

// Init assembles the router. Routes are grouped by the rate-limit class
// they share; everything except login, version and health requires a
// valid bearer token.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withErrorMonitoring)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/health", h.health)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.withRateLimit(ratelimit.ClassAuth))
		r.Post("/api/auth/login", h.login)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Group(func(r chi.Router) {
			r.Use(h.withRateLimit(ratelimit.ClassGeneral))

			r.Post("/api/auth/logout", h.logout)

			r.Get("/api/contacts", h.listContacts)
			r.Get("/api/contacts/{contactID}", h.getContact)
			r.Get("/api/contacts/{contactID}/connections", h.listConnections)
			r.Get("/api/contacts/analytics", h.analytics)
			r.Get("/api/contacts/network-stats", h.networkStats)

			r.Get("/api/cache", h.cacheStats)
			r.Post("/api/cache", h.cacheAction)

			r.Get("/api/monitoring/errors", h.errorStats)
			r.Delete("/api/monitoring/errors", h.clearErrors)

			r.Post("/api/ai/chat", h.aiChat)
			r.Post("/api/ai/parse-profile", h.aiParseProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.withRateLimit(ratelimit.ClassSearch))
			r.Get("/api/contacts/search", h.searchContacts)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.withRateLimit(ratelimit.ClassMutation))

			r.Post("/api/contacts", h.createContact)
			r.Put("/api/contacts", h.updateContactByBody)
			r.Delete("/api/contacts", h.deleteContactByBody)
			r.Put("/api/contacts/{contactID}", h.updateContact)
			r.Delete("/api/contacts/{contactID}", h.deleteContact)

			r.Post("/api/contacts/{contactID}/connections", h.addConnection)
			r.Delete("/api/contacts/{contactID}/connections/{targetContactID}", h.removeConnection)
		})
	})

	return router
}
