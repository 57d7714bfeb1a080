package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recupera-monofasico/internal/application/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/application/ingestion"
	"github.com/jhoicas/recupera-monofasico/internal/application/report"
	"github.com/jhoicas/recupera-monofasico/internal/application/review"
	"github.com/jhoicas/recupera-monofasico/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ingestion *ingestion.Service
	Review    *review.Service
	Apuracao  *apuracao.Service
	Reports   *report.UseCase
	JWTSecret string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; las escrituras
// solo para admin y analista.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleAnalista, jwt.RoleConsulta)
	writer := RequireRole(jwt.RoleAdmin, jwt.RoleAnalista)

	uploadHandler := NewUploadHandler(deps.Ingestion)
	uploads := api.Group("/uploads")
	uploads.Get("/", anyRole, uploadHandler.List)
	uploads.Post("/", writer, uploadHandler.Upload)
	uploads.Post("/process", writer, uploadHandler.Process)
	uploads.Delete("/", RequireRole(jwt.RoleAdmin), uploadHandler.Clear)
	uploads.Delete("/:id", writer, uploadHandler.Delete)

	invoiceHandler := NewInvoiceHandler(deps.Review)
	invoices := api.Group("/invoices")
	invoices.Get("/", anyRole, invoiceHandler.List)
	invoices.Delete("/", RequireRole(jwt.RoleAdmin), invoiceHandler.Clear)

	reviewGroup := api.Group("/review")
	reviewGroup.Get("/", anyRole, invoiceHandler.ListPending)
	reviewGroup.Put("/", writer, invoiceHandler.SaveReview)

	calcHandler := NewCalculationHandler(deps.Apuracao)
	calcs := api.Group("/calculations")
	calcs.Get("/", anyRole, calcHandler.Calculate)
	calcs.Get("/report", anyRole, calcHandler.Report)
	calcs.Get("/inputs", anyRole, calcHandler.ListInputs)
	calcs.Put("/inputs", writer, calcHandler.SaveInputs)
	calcs.Delete("/inputs/:month", writer, calcHandler.DeleteInput)

	reportHandler := NewReportHandler(deps.Reports)
	reports := api.Group("/reports", anyRole)
	reports.Get("/excel", reportHandler.Excel)
	reports.Get("/pdf", reportHandler.PDF)

	simplesHandler := NewSimplesHandler()
	api.Get("/simples/anexos", anyRole, simplesHandler.ListAnexos)
}
