package routers

import (
	"theracare-service/internal/app/delivery/http/controllers"
	"theracare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachRecordRoutes(router chi.Router, middlewares *middlewares.Middlewares, recordController *controllers.RecordController) {
	router.Use(middlewares.Authenticate)
	router.Post("/conditions/manual", recordController.AddManualCondition)
	router.Post("/family-history/manual", recordController.AddManualFamilyHistory)
	router.Get("/{category}", recordController.GetRecords)
	router.Get("/{category}/summary", recordController.GetSummary)
	router.Post("/{category}/import", recordController.ImportRecords)
	router.Post("/{category}/batch", recordController.SaveBatch)
}
