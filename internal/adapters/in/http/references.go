package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type fileNameRequest struct {
	FileName string `json:"fileName"`
}

type validateFileNameRequest struct {
	FileName             string  `json:"fileName"`
	ExcludePackingUnitID *string `json:"excludePackingUnitId"`
}

type fileNameResponse struct {
	FileName string `json:"fileName"`
	Status   string `json:"status"`
	Changed  bool   `json:"changed"`
}

type resolutionResponse struct {
	FileName string `json:"fileName"`
	Status   string `json:"status"`
	Detail   string `json:"detail"`
}

// AddPackingUnit handles POST /api/v1/invoices/:id/packing-units.
func (s *Server) AddPackingUnit(ctx echo.Context) error {
	invoiceID, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req fileNameRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	unitID := kernel.NewUUID()
	cmd, err := commands.NewAddPackingUnitCommand(unitID, invoiceID, req.FileName)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.AddPackingUnit.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: unitID.String()})
}

// ChangeFileName handles PUT /api/v1/packing-units/:id/file-name.
func (s *Server) ChangeFileName(ctx echo.Context) error {
	unitID, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req fileNameRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeFileNameCommand(unitID, req.FileName)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.ChangeFileName.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fileNameResponse{
		FileName: result.FileName.String(),
		Status:   string(result.Status),
		Changed:  result.Changed,
	})
}

// ValidateFileName handles POST /api/v1/file-name-validate. A storage failure
// is reported as the "error" status rather than as a failed request.
func (s *Server) ValidateFileName(ctx echo.Context) error {
	var req validateFileNameRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var exclude *kernel.UUID
	if req.ExcludePackingUnitID != nil && *req.ExcludePackingUnitID != "" {
		id, err := kernel.UUIDFromString(*req.ExcludePackingUnitID)
		if err != nil {
			return s.fail(ctx, err)
		}
		exclude = &id
	}

	query, err := queries.NewResolveFileReferenceQuery(req.FileName, exclude)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.ResolveFileReference.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resolutionResponse{
		FileName: result.FileName.String(),
		Status:   string(result.Status),
		Detail:   result.Detail,
	})
}
