package routers

import (
	"theracare-service/internal/app/delivery/http/controllers"
	"theracare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachGatewayRoutes(router chi.Router, middlewares *middlewares.Middlewares, gatewayController *controllers.GatewayController) {
	router.Use(middlewares.Authenticate)
	router.Get("/search", gatewayController.SearchPatients)
	router.Get("/patient/{id}", gatewayController.GetPatient)
	router.Get("/{resource}/{patient_id}", gatewayController.GetResources)
}
