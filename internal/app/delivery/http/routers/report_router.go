package routers

import (
	"theracare-service/internal/app/delivery/http/controllers"
	"theracare-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachReportRoutes(router chi.Router, middlewares *middlewares.Middlewares, reportController *controllers.ReportController) {
	router.With(middlewares.Authenticate).Post("/", reportController.GenerateReport)
}
