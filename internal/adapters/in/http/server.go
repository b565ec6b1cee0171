// Package http exposes the dispatch use cases over a JSON API.
// Handlers bind and validate the request, build the command or query and map
// use case errors to status codes via StatusFor.
package http

import (
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Handlers bundles the use cases served by the API.
type Handlers struct {
	// Command handlers
	CreateInvoice                commands.CreateInvoiceCommandHandler
	AdvanceStage                 commands.AdvanceStageCommandHandler
	CheckDocumentCompleteness    commands.CheckDocumentCompletenessCommandHandler
	RecordInspection             commands.RecordInspectionCommandHandler
	MarkReadyForTransport        commands.MarkReadyForTransportCommandHandler
	AddPackingUnit               commands.AddPackingUnitCommandHandler
	ChangeFileName               commands.ChangeFileNameCommandHandler
	CreateTransportRequest       commands.CreateTransportRequestCommandHandler
	AssignTransportRequest       commands.AssignTransportRequestCommandHandler
	RejectTransportRequest       commands.RejectTransportRequestCommandHandler
	CreateLoadConfirmation       commands.CreateLoadConfirmationCommandHandler
	ChangeLoadConfirmationStatus commands.ChangeLoadConfirmationStatusCommandHandler
	DeleteLoadConfirmation       commands.DeleteLoadConfirmationCommandHandler
	RequestLoadConfirmationEmail commands.RequestLoadConfirmationEmailCommandHandler
	CreateManifest               commands.CreateManifestCommandHandler

	// Query handlers
	ResolveFileReference queries.ResolveFileReferenceQueryHandler
	GetInvoiceProgress   queries.GetInvoiceProgressQueryHandler
	GetActivityLog       queries.GetActivityLogQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// Register mounts the API under /api/v1 and the health probe at /health.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id/progress", s.GetInvoiceProgress)
	api.POST("/invoices/:id/stage-advance", s.AdvanceStage)
	api.POST("/invoices/:id/ready-for-transport", s.MarkReadyForTransport)
	api.POST("/invoices/:id/document-check", s.CheckDocumentCompleteness)
	api.PUT("/invoices/:id/inspections/:kind", s.RecordInspection)
	api.GET("/invoices/:id/activity", s.GetInvoiceActivity)
	api.POST("/invoices/:id/packing-units", s.AddPackingUnit)

	api.PUT("/packing-units/:id/file-name", s.ChangeFileName)
	api.POST("/file-name-validate", s.ValidateFileName)

	api.POST("/transport-requests", s.CreateTransportRequest)
	api.POST("/transport-requests/:id/assign", s.AssignTransportRequest)
	api.POST("/transport-requests/:id/reject", s.RejectTransportRequest)

	api.POST("/load-confirmations", s.CreateLoadConfirmation)
	api.POST("/load-confirmations/:id/status", s.ChangeLoadConfirmationStatus)
	api.POST("/load-confirmations/:id/email", s.RequestLoadConfirmationEmail)
	api.DELETE("/load-confirmations/:id", s.DeleteLoadConfirmation)

	api.POST("/manifests", s.CreateManifest)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

type createdResponse struct {
	ID string `json:"id"`
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}
	return kernel.UUIDFromString(id.String())
}
