package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/invoice"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type newInvoiceRequest struct {
	Number     string `json:"number"`
	RequiresQC bool   `json:"requiresQC"`
	RequiresBV bool   `json:"requiresBV"`
}

type advanceStageRequest struct {
	Notes           string `json:"notes"`
	ExpectedVersion *int   `json:"expectedVersion"`
}

type advanceStageResponse struct {
	Stage           string `json:"stage"`
	ProgressPercent int    `json:"progressPercent"`
	Version         int    `json:"version"`
}

type readyForTransportRequest struct {
	Confirmed bool   `json:"confirmed"`
	Notes     string `json:"notes"`
}

type readyForTransportResponse struct {
	Status          string    `json:"status"`
	ReadyDispatchAt time.Time `json:"readyDispatchAt"`
}

type documentCheckResponse struct {
	Complete bool `json:"complete"`
	Blocked  bool `json:"blocked"`
}

type inspectionRequest struct {
	Status         string `json:"status"`
	HasCertificate bool   `json:"hasCertificate"`
}

type inspectionResponse struct {
	Status         string `json:"status"`
	HasCertificate bool   `json:"hasCertificate"`
}

type progressResponse struct {
	ID                         string               `json:"id"`
	Number                     string               `json:"number"`
	Stage                      string               `json:"stage"`
	ProgressPercent            int                  `json:"progressPercent"`
	RequiresQC                 bool                 `json:"requiresQC"`
	RequiresBV                 bool                 `json:"requiresBV"`
	QC                         inspectionResponse   `json:"qc"`
	BV                         inspectionResponse   `json:"bv"`
	CompletedAt                map[string]time.Time `json:"completedAt"`
	ReadyDispatchAt            *time.Time           `json:"readyDispatchAt,omitempty"`
	BlockedWaitingForDocuments bool                 `json:"blockedWaitingForDocuments"`
	TransportStatus            string               `json:"transportStatus"`
	Version                    int                  `json:"version"`
}

type activityEntryResponse struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	FromStatus  string         `json:"fromStatus,omitempty"`
	ToStatus    string         `json:"toStatus,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	OccurredAt  time.Time      `json:"occurredAt"`
}

// CreateInvoice handles POST /api/v1/invoices.
func (s *Server) CreateInvoice(ctx echo.Context) error {
	var req newInvoiceRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateInvoiceCommand(id, req.Number, invoice.Requirements{
		QC: req.RequiresQC,
		BV: req.RequiresBV,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateInvoice.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: id.String()})
}

// GetInvoiceProgress handles GET /api/v1/invoices/:id/progress.
func (s *Server) GetInvoiceProgress(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetInvoiceProgressQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	progress, err := s.handlers.GetInvoiceProgress.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	completed := make(map[string]time.Time, len(progress.CompletedAt))
	for stage, at := range progress.CompletedAt {
		completed[stage.String()] = at
	}

	ctx.Response().Header().Set("ETag", versionETag(progress.Version))
	return ctx.JSON(http.StatusOK, progressResponse{
		ID:                         progress.ID.String(),
		Number:                     progress.Number,
		Stage:                      progress.Stage.String(),
		ProgressPercent:            progress.ProgressPercent,
		RequiresQC:                 progress.Requirements.QC,
		RequiresBV:                 progress.Requirements.BV,
		QC:                         toInspectionResponse(progress.QC),
		BV:                         toInspectionResponse(progress.BV),
		CompletedAt:                completed,
		ReadyDispatchAt:            progress.ReadyDispatchAt,
		BlockedWaitingForDocuments: progress.BlockedWaitingForDocuments,
		TransportStatus:            progress.TransportStatus.String(),
		Version:                    progress.Version,
	})
}

// AdvanceStage handles POST /api/v1/invoices/:id/stage-advance. The expected
// version comes from the body or from an If-Match header carrying the ETag of
// the last progress read. Without either the advance is unconditional.
func (s *Server) AdvanceStage(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req advanceStageRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	expected, err := expectedVersion(ctx, req.ExpectedVersion)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAdvanceStageCommand(id, req.Notes, expected)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.AdvanceStage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, advanceStageResponse{
		Stage:           result.Stage.String(),
		ProgressPercent: result.ProgressPercent,
		Version:         result.Version,
	})
}

// MarkReadyForTransport handles POST /api/v1/invoices/:id/ready-for-transport.
func (s *Server) MarkReadyForTransport(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req readyForTransportRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkReadyForTransportCommand(id, req.Confirmed, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.MarkReadyForTransport.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, readyForTransportResponse{
		Status:          result.Stage.String(),
		ReadyDispatchAt: result.ReadyDispatchAt,
	})
}

// CheckDocumentCompleteness handles POST /api/v1/invoices/:id/document-check.
func (s *Server) CheckDocumentCompleteness(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCheckDocumentCompletenessCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CheckDocumentCompleteness.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, documentCheckResponse{
		Complete: result.Complete,
		Blocked:  result.Blocked,
	})
}

// RecordInspection handles PUT /api/v1/invoices/:id/inspections/:kind.
func (s *Server) RecordInspection(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req inspectionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := invoice.ParseInspectionKind(ctx.Param("kind"))
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := invoice.ParseInspectionStatus(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRecordInspectionCommand(id, kind, status, req.HasCertificate)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.RecordInspection.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetInvoiceActivity handles GET /api/v1/invoices/:id/activity?limit=N.
func (s *Server) GetInvoiceActivity(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var limit int
	if err = echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	query, err := queries.NewGetActivityLogQuery(activity.OwnerInvoice, id, limit)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.handlers.GetActivityLog.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]activityEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = activityEntryResponse{
			ID:          entry.ID.String(),
			Type:        string(entry.Type),
			Description: entry.Description,
			FromStatus:  entry.FromStatus,
			ToStatus:    entry.ToStatus,
			Metadata:    entry.Metadata,
			OccurredAt:  entry.OccurredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toInspectionResponse(i invoice.Inspection) inspectionResponse {
	return inspectionResponse{
		Status:         i.Status.String(),
		HasCertificate: i.HasCertificate,
	}
}

func versionETag(version int) string {
	return fmt.Sprintf(`"v%d"`, version)
}

// expectedVersion prefers the body field and falls back to If-Match.
func expectedVersion(ctx echo.Context, fromBody *int) (*int, error) {
	if fromBody != nil {
		return fromBody, nil
	}

	raw := strings.TrimSpace(ctx.Request().Header.Get("If-Match"))
	if raw == "" || raw == "*" {
		return nil, nil
	}

	tag := strings.TrimPrefix(raw, "W/")
	tag = strings.TrimSuffix(strings.TrimPrefix(tag, `"`), `"`)
	version, err := strconv.Atoi(strings.TrimPrefix(tag, "v"))
	if err != nil || !strings.HasPrefix(tag, "v") {
		return nil, fmt.Errorf("If-Match %q is not a progress ETag", raw)
	}
	return &version, nil
}
