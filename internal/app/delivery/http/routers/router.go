package routers

import (
	"net/http"
	"strings"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/delivery/http/controllers"
	"theracare-service/internal/app/delivery/http/middlewares"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type Controllers struct {
	Auth        *controllers.AuthController
	Profile     *controllers.ProfileController
	Record      *controllers.RecordController
	Gateway     *controllers.GatewayController
	Terminology *controllers.TerminologyController
	Assistant   *controllers.AssistantController
	User        *controllers.UserController
	Report      *controllers.ReportController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	controllers *Controllers,
	metricsHandler http.Handler,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.CorsAllowedOrigins,
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPut, constvars.MethodDelete, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXCSRFToken, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middleware.RealIP)
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.Metrics)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, nil)
	})
	router.Handle("/metrics", metricsHandler)

	endpointPrefix := "/" + strings.Trim(internalConfig.App.EndpointPrefix, "/")
	versionPrefix := "/" + strings.Trim(internalConfig.App.Version, "/")

	bodyLimit := int64(internalConfig.App.RequestBodyLimitInMegabyte) << 20
	audioLimit := int64(internalConfig.Minio.AudioMaxUploadSizeInMB+1) << 20

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequestSize(bodyLimit))

				r.Route("/auth", func(r chi.Router) {
					attachAuthRoutes(r, middlewares, controllers.Auth)
				})

				r.Route("/profile", func(r chi.Router) {
					attachProfileRoutes(r, middlewares, controllers.Profile)
				})

				r.Route("/records", func(r chi.Router) {
					attachRecordRoutes(r, middlewares, controllers.Record)
				})

				r.Route("/gateway", func(r chi.Router) {
					attachGatewayRoutes(r, middlewares, controllers.Gateway)
				})

				r.Route("/terminology", func(r chi.Router) {
					attachTerminologyRoutes(r, middlewares, controllers.Terminology)
				})

				r.Route("/users", func(r chi.Router) {
					attachUserRoutes(r, middlewares, controllers.User)
				})

				r.Route("/reports", func(r chi.Router) {
					attachReportRoutes(r, middlewares, controllers.Report)
				})
			})

			r.Route("/assistant", func(r chi.Router) {
				r.Use(middleware.RequestSize(audioLimit))
				attachAssistantRoutes(r, middlewares, controllers.Assistant)
			})
		})
	})
}
