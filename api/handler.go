// Package api - quote endpoint handler.
// The handler is a thin adapter: it parses transport shapes, invokes the
// pipeline, and maps outcomes to HTTP statuses. No quote logic lives here.
package api

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Normalno100/InsuranceApplication-sub001/api/middleware"
	"github.com/Normalno100/InsuranceApplication-sub001/core/engine"
	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/logging"
)

// Handler serves the quote endpoints
type Handler struct {
	pipeline *engine.Pipeline
	data     refdata.Provider
	validate *validator.Validate
	now      func() time.Time
}

// NewHandler creates a handler over a pipeline and its reference data.
// now supplies "today" for the pipeline; inject a fixed clock in tests.
func NewHandler(pipeline *engine.Pipeline, data refdata.Provider, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		pipeline: pipeline,
		data:     data,
		validate: validator.New(),
		now:      now,
	}
}

// Quote handles POST /api/v1/quote.
//
// Status mapping: blocking validation findings map to 400, an underwriting
// decline to 422, manual review to 202, and an approved quote to 200.
func (h *Handler) Quote(c fiber.Ctx) error {
	var req QuoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.errorResponse(c, fiber.StatusBadRequest, "malformed request body", "INVALID_JSON", err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return h.errorResponse(c, fiber.StatusBadRequest, "malformed request fields", "INVALID_SHAPE", err.Error())
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		return h.errorResponse(c, fiber.StatusBadRequest, "unparseable date field", "INVALID_DATE", err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	today := h.now().UTC()
	outcome, err := h.pipeline.Quote(ctx, domainReq, today)
	if err != nil {
		if logging.Sugar != nil {
			logging.Sugar.Errorw("quote pipeline failed", "error", err)
		}
		return h.errorResponse(c, fiber.StatusInternalServerError, "quote computation failed", "COMPUTATION_FAILURE", nil)
	}

	middleware.CountDecision(string(outcome.Status))

	resp := QuoteResponse{
		QuoteID:   uuid.NewString(),
		Timestamp: today,
		Outcome:   outcome,
	}

	status := fiber.StatusOK
	message := "quote approved"
	switch outcome.Status {
	case engine.StatusValidationFailed:
		status = fiber.StatusBadRequest
		message = "quote request failed validation"
	case engine.StatusDeclined:
		status = fiber.StatusUnprocessableEntity
		message = "quote declined by underwriting"
	case engine.StatusReview:
		status = fiber.StatusAccepted
		message = "quote requires manual review"
	}

	return c.Status(status).JSON(APIResponse{
		Success: outcome.Status == engine.StatusApproved,
		Message: message,
		Data:    resp,
	})
}

// Countries handles GET /api/v1/refdata/countries.
// Lists the destinations active on the current date.
func (h *Handler) Countries(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	countries, err := h.data.Countries(ctx, h.now().UTC())
	if err != nil {
		if logging.Sugar != nil {
			logging.Sugar.Errorw("country listing failed", "error", err)
		}
		return h.errorResponse(c, fiber.StatusInternalServerError, "reference data unavailable", "REFDATA_FAILURE", nil)
	}
	return c.JSON(APIResponse{Success: true, Data: countries})
}

// Health handles GET /api/v1/health
func (h *Handler) Health(c fiber.Ctx) error {
	return c.JSON(APIResponse{Success: true, Message: "ok"})
}

// Version handles GET /api/v1/version
func (h *Handler) Version(c fiber.Ctx) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    map[string]string{"version": Version},
	})
}

func (h *Handler) errorResponse(c fiber.Ctx, status int, message, code string, details any) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
		Error: ErrorDetail{
			Code:    code,
			Details: details,
		},
	})
}
