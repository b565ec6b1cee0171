package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type newTransportRequestRequest struct {
	InvoiceIDs []string `json:"invoiceIds"`
	Notes      string   `json:"notes"`
}

type assignTransportRequestRequest struct {
	FileReference string `json:"fileReference"`
	Transporter   string `json:"transporter"`
	VehicleNumber string `json:"vehicleNumber"`
}

type assignTransportRequestResponse struct {
	LoadConfirmationID string `json:"loadConfirmationId"`
}

type rejectTransportRequestRequest struct {
	Reason string `json:"reason"`
}

type newLoadConfirmationRequest struct {
	FileReference string   `json:"fileReference"`
	InvoiceIDs    []string `json:"invoiceIds"`
	Transporter   string   `json:"transporter"`
	VehicleNumber string   `json:"vehicleNumber"`
}

type loadConfirmationStatusRequest struct {
	Action string `json:"action"`
}

type loadConfirmationStatusResponse struct {
	Status string `json:"status"`
}

type loadConfirmationEmailRequest struct {
	Recipients []string `json:"recipients"`
}

type newManifestRequest struct {
	LoadConfirmationID string `json:"loadConfirmationId"`
}

type manifestResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

// CreateTransportRequest handles POST /api/v1/transport-requests.
func (s *Server) CreateTransportRequest(ctx echo.Context) error {
	var req newTransportRequestRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	invoiceIDs, err := kernel.UUIDsFromStrings(req.InvoiceIDs)
	if err != nil {
		return s.fail(ctx, err)
	}

	requestID := kernel.NewUUID()
	cmd, err := commands.NewCreateTransportRequestCommand(requestID, invoiceIDs, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateTransportRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: requestID.String()})
}

// AssignTransportRequest handles POST /api/v1/transport-requests/:id/assign.
func (s *Server) AssignTransportRequest(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req assignTransportRequestRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	loadConfirmationID := kernel.NewUUID()
	cmd, err := commands.NewAssignTransportRequestCommand(requestID, loadConfirmationID, req.FileReference, booking.Vehicle{
		Transporter:   req.Transporter,
		VehicleNumber: req.VehicleNumber,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.AssignTransportRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, assignTransportRequestResponse{LoadConfirmationID: loadConfirmationID.String()})
}

// RejectTransportRequest handles POST /api/v1/transport-requests/:id/reject.
func (s *Server) RejectTransportRequest(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req rejectTransportRequestRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRejectTransportRequestCommand(requestID, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.RejectTransportRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateLoadConfirmation handles POST /api/v1/load-confirmations.
func (s *Server) CreateLoadConfirmation(ctx echo.Context) error {
	var req newLoadConfirmationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	invoiceIDs, err := kernel.UUIDsFromStrings(req.InvoiceIDs)
	if err != nil {
		return s.fail(ctx, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateLoadConfirmationCommand(id, req.FileReference, invoiceIDs, booking.Vehicle{
		Transporter:   req.Transporter,
		VehicleNumber: req.VehicleNumber,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateLoadConfirmation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: id.String()})
}

// ChangeLoadConfirmationStatus handles POST /api/v1/load-confirmations/:id/status.
func (s *Server) ChangeLoadConfirmationStatus(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req loadConfirmationStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeLoadConfirmationStatusCommand(id, req.Action)
	if err != nil {
		return s.fail(ctx, err)
	}

	status, err := s.handlers.ChangeLoadConfirmationStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, loadConfirmationStatusResponse{Status: status.String()})
}

// RequestLoadConfirmationEmail handles POST /api/v1/load-confirmations/:id/email.
// The email itself is sent after the request is recorded.
func (s *Server) RequestLoadConfirmationEmail(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req loadConfirmationEmailRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRequestLoadConfirmationEmailCommand(id, req.Recipients)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.RequestLoadConfirmationEmail.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// DeleteLoadConfirmation handles DELETE /api/v1/load-confirmations/:id.
func (s *Server) DeleteLoadConfirmation(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteLoadConfirmationCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.DeleteLoadConfirmation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateManifest handles POST /api/v1/manifests.
func (s *Server) CreateManifest(ctx echo.Context) error {
	var req newManifestRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	loadConfirmationID, err := kernel.UUIDFromString(req.LoadConfirmationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateManifestCommand(kernel.NewUUID(), loadConfirmationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CreateManifest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, manifestResponse{ID: result.ManifestID, Number: result.Number})
}
