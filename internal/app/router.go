package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/poofware/pledge-service/internal/controllers"
	"github.com/poofware/pledge-service/internal/routes"
	"github.com/poofware/pledge-service/internal/utils"
)

// Router returns the full HTTP handler, CORS included.
func (a *App) Router() http.Handler {
	cfg := a.Config

	// Controllers
	healthCtrl := controllers.NewHealthController(a.SignatoryService)
	pledgeCtrl := controllers.NewPledgeController(a.PledgeService)
	verifyCtrl := controllers.NewVerificationController(a.VerificationService, cfg.LinkBaseURL())
	signatoryCtrl := controllers.NewSignatoryController(a.SignatoryService)
	statsCtrl := controllers.NewStatsController(a.StatsService)

	router := mux.NewRouter()

	// Health & metrics
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)
	router.Handle(routes.Metrics, promhttp.Handler()).Methods(http.MethodGet)

	// Verification links; the bare prefix routes cover an empty token.
	router.HandleFunc(routes.PledgeVerify, verifyCtrl.VerifyHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PledgeVerifyPrefix, verifyCtrl.VerifyHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PledgeVerifyPrefix+"/", verifyCtrl.VerifyHandler).Methods(http.MethodGet)

	// Public readers
	router.HandleFunc(routes.Signatories, signatoryCtrl.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Stats, statsCtrl.StatsHandler).Methods(http.MethodGet)

	// Writes, rate limited per client IP
	limited := router.NewRoute().Subrouter()
	limited.Use(a.SubmitLimiter.Middleware)
	limited.HandleFunc(routes.PledgeSubmit, pledgeCtrl.SubmitHandler).Methods(http.MethodPost)
	limited.HandleFunc(routes.PledgeResend, pledgeCtrl.ResendHandler).Methods(http.MethodPost)

	if !cfg.Production {
		router.HandleFunc(routes.DebugSignatories, signatoryCtrl.DebugListHandler).Methods(http.MethodGet)
		utils.Logger.Warnf("Debug listing enabled at %s", routes.DebugSignatories)
	}

	origins := append([]string(nil), cfg.AllowedOrigins...)
	if len(origins) == 0 {
		origins = []string{cfg.AppUrl}
	}
	if !cfg.Production {
		origins = append(origins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(router)
}
