package routers

import (
	"theracare-service/internal/app/delivery/http/controllers"
	"theracare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachTerminologyRoutes(router chi.Router, middlewares *middlewares.Middlewares, terminologyController *controllers.TerminologyController) {
	router.Use(middlewares.Authenticate)
	router.Get("/search", terminologyController.Search)
	router.Get("/tokenize", terminologyController.Tokenize)
	router.Post("/tokenize", terminologyController.Tokenize)
}
