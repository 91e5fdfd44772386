/*
Package handler provides the HTTP handlers and routing setup for the LearnLoop web core.

This file defines the main Router, applying middleware like logging, CORS, and
caller-based rate limiting before delegating requests to specific handlers. The
routes are the JSON surface the presentation layer renders from: the access
gate verdict, the onboarding wizard steps, and the dashboard/roadmap/profile
view-models.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"learnloop/internal/pkg/auth/jwt"
	"learnloop/internal/pkg/limiter"
	"learnloop/internal/pkg/logx"
	"learnloop/internal/pkg/resp"
)

const (
	// Roadmap generation is expensive upstream; keep the trigger slow.
	RoadmapRate  = 0.05
	RoadmapBurst = 2

	// Wizard writes are cheap; normal traffic never exceeds this.
	WizardRate  = 1.0
	WizardBurst = 10
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes caller-based rate limiters, configures CORS, and applies
// global and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	roadmapLimiter := limiter.NewCallerRateLimiter(rate.Limit(RoadmapRate), RoadmapBurst)
	wizardLimiter := limiter.NewCallerRateLimiter(rate.Limit(WizardRate), WizardBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "LearnLoop Web Core",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Get("/gate", HandleGate(deps))
		api.Get("/nav", HandleNav(deps))

		api.Route("/onboarding", func(ob chi.Router) {
			ob.Get("/state", HandleOnboardingState(deps))
			ob.Get("/catalog", HandleOnboardingCatalog(deps))
			ob.Post("/profile", HandleProfileStep(deps))
			ob.Post("/domains", HandleDomainsStep(deps))

			skillsHandler := wizardLimiter.Middleware(HandleSkillsStep(deps))
			ob.Post("/skills", skillsHandler.ServeHTTP)
		})

		api.Get("/dashboard", HandleDashboard(deps))
		api.Get("/profile", HandleProfile(deps))

		api.Get("/roadmaps/{slug}", HandleGetRoadmap(deps))
		requestHandler := roadmapLimiter.Middleware(HandleRequestRoadmap(deps))
		api.Post("/roadmaps", requestHandler.ServeHTTP)
	})

	return r
}
