package routers

import (
	"theracare-service/internal/app/delivery/http/controllers"
	"theracare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachProfileRoutes(router chi.Router, middlewares *middlewares.Middlewares, profileController *controllers.ProfileController) {
	router.Use(middlewares.Authenticate)
	router.Get("/", profileController.GetProfile)
	router.Put("/", profileController.UpsertProfile)
	router.Post("/import/{patient_id}", profileController.ImportProfile)
}
