/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/quotes                  Comprehensive price quotes
  /api/offers/*                Offer management and pricing
  /api/strategies/user/*       User strategy management
  /api/strategies/marketing/*  Campaign management and quota
  /api/prices                  Price data upload
  /api/scenarios/*             Demo scenarios

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Quote routes
		r.Post("/quotes", h.CreateQuote)

		// Offer routes
		r.Route("/offers", func(r chi.Router) {
			r.Get("/", h.ListOffers)
			r.Post("/", h.CreateOffer)
			r.Get("/{offerNo}", h.GetOffer)
			r.Get("/{offerNo}/price", h.GetOfferPrice)
			r.Get("/{offerNo}/trend", h.GetOfferTrend)
			r.Delete("/{offerNo}", h.DeleteOffer)
		})

		// Strategy routes
		r.Route("/strategies", func(r chi.Router) {
			r.Route("/user", func(r chi.Router) {
				r.Get("/", h.ListUserStrategies)
				r.Post("/", h.CreateUserStrategy)
				r.Post("/analyze", h.AnalyzeUserStrategies)
				r.Get("/{id}", h.GetUserStrategy)
				r.Delete("/{id}", h.DeleteUserStrategy)
			})
			r.Route("/marketing", func(r chi.Router) {
				r.Get("/", h.ListMarketingStrategies)
				r.Post("/", h.CreateMarketingStrategy)
				r.Get("/{id}", h.GetMarketingStrategy)
				r.Delete("/{id}", h.DeleteMarketingStrategy)
				r.Post("/{id}/reserve", h.ReserveQuota)
				r.Post("/{id}/bind", h.BindOffer)
			})
		})

		// Price data routes
		r.Post("/prices", h.SavePrices)

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Travel Pricing Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Travel Pricing Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/offers">/api/offers</a> - List offers</li>
<li><a href="/api/strategies/user">/api/strategies/user</a> - List user strategies</li>
<li><a href="/api/strategies/marketing">/api/strategies/marketing</a> - List campaigns</li>
<li><a href="/api/scenarios">/api/scenarios</a> - List scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
