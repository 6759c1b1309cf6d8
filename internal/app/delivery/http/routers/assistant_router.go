package routers

import (
	"theracare-service/internal/app/delivery/http/controllers"
	"theracare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAssistantRoutes(router chi.Router, middlewares *middlewares.Middlewares, assistantController *controllers.AssistantController) {
	router.Use(middlewares.Authenticate)
	router.Post("/transcribe", assistantController.TranscribeAudio)
	router.Post("/conditions/extract", assistantController.ExtractCondition)
	router.Post("/family-history/extract", assistantController.ExtractFamilyHistory)
}
