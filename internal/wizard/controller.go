package wizard

import (
	"errors"
	"net/http"

	"eventcraft/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	Open(c *gin.Context)
	ResolveRecovery(c *gin.Context)
	UpdateState(c *gin.Context)
	ComponentAction(c *gin.Context)
	Step(c *gin.Context)
	Summary(c *gin.Context)
	Submit(c *gin.Context)
	Discard(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// Open starts or restarts a wizard session for the authenticated staffer
func (ctrl *controller) Open(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		return
	}

	var req OpenRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
			return
		}
	}

	resp, err := ctrl.service.Open(c.Request.Context(), staffID, &req)
	if err != nil {
		respondWizardError(c, err, "Failed to open wizard")
		return
	}

	message := "Wizard session opened"
	if resp.RecoveryAvailable {
		message = "A recoverable draft was found"
	}
	response.RespondJSON(c, "success", http.StatusOK, message, resp, nil)
}

// ResolveRecovery answers a pending resume/discard prompt
func (ctrl *controller) ResolveRecovery(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		return
	}

	var req RecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	summary, err := ctrl.service.ResolveRecovery(c.Request.Context(), staffID, req.Resume)
	if err != nil {
		respondWizardError(c, err, "Failed to resolve recovery")
		return
	}

	message := "Draft discarded"
	if req.Resume {
		message = "Draft recovered"
	}
	response.RespondJSON(c, "success", http.StatusOK, message, summary, nil)
}

// UpdateState applies partial updates and returns the recomputed summary
func (ctrl *controller) UpdateState(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		return
	}

	var req UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	summary, err := ctrl.service.UpdateState(c.Request.Context(), staffID, &req)
	if err != nil {
		respondWizardError(c, err, "Failed to update wizard state")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Wizard state updated", summary, nil)
}

// ComponentAction mutates the component set
func (ctrl *controller) ComponentAction(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		return
	}

	var req ComponentActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	summary, err := ctrl.service.ComponentAction(c.Request.Context(), staffID, &req)
	if err != nil {
		respondWizardError(c, err, "Component action failed")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Components updated", summary, nil)
}

// Step navigates the step sequence
func (ctrl *controller) Step(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		return
	}

	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := ctrl.service.Step(c.Request.Context(), staffID, &req)
	if err != nil {
		respondWizardError(c, err, "Step navigation failed")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Step changed", resp, nil)
}

// Summary returns the totals partition and step readiness
func (ctrl *controller) Summary(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		return
	}

	summary, err := ctrl.service.Summary(c.Request.Context(), staffID)
	if err != nil {
		respondWizardError(c, err, "Failed to build summary")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Wizard summary", summary, nil)
}

// Submit hands the session to the submission guard
func (ctrl *controller) Submit(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		return
	}

	result, err := ctrl.service.Submit(c.Request.Context(), staffID)
	if err != nil {
		respondWizardError(c, err, "Submission failed")
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Event created successfully", result, nil)
}

// Discard clears the draft and resets the session
func (ctrl *controller) Discard(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		return
	}

	if err := ctrl.service.Discard(c.Request.Context(), staffID); err != nil {
		respondWizardError(c, err, "Failed to discard session")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Wizard session discarded", nil, nil)
}

func staffIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(userID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid user ID", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}

// respondWizardError maps the wizard error taxonomy onto HTTP statuses. A
// concurrent submission gets 202: the first attempt is already in flight
// and there is nothing for the caller to fix.
func respondWizardError(c *gin.Context, err error, fallback string) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		response.RespondJSON(c, "error", http.StatusBadRequest, validationErr.Message, nil,
			gin.H{"field": validationErr.Field})
		return
	}

	var submissionErr *SubmissionError
	if errors.As(err, &submissionErr) {
		response.RespondJSON(c, "error", http.StatusBadGateway, submissionErr.Error(), nil, nil)
		return
	}

	switch {
	case errors.Is(err, ErrSubmissionInFlight):
		response.RespondJSON(c, "success", http.StatusAccepted, "Submission already in progress", nil, nil)
	case errors.Is(err, ErrSubmissionCompleted):
		response.RespondJSON(c, "error", http.StatusConflict, "This session already created an event", nil, nil)
	case errors.Is(err, ErrBookingNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Booking not found", nil, nil)
	case errors.Is(err, ErrBookingNotConfirmed):
		response.RespondJSON(c, "error", http.StatusConflict, "Booking is not confirmed", nil, nil)
	case errors.Is(err, ErrBookingAlreadyConverted):
		response.RespondJSON(c, "error", http.StatusConflict, "Booking has already been converted", nil, nil)
	case errors.Is(err, ErrPackageNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Package not found", nil, nil)
	case errors.Is(err, ErrVenueNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Venue not found", nil, nil)
	case errors.Is(err, ErrNoActiveSession):
		response.RespondJSON(c, "error", http.StatusNotFound, "No active wizard session; open one first", nil, nil)
	case errors.Is(err, ErrRecoveryPending):
		response.RespondJSON(c, "error", http.StatusConflict, "Resolve the draft recovery prompt first", nil, nil)
	case errors.Is(err, ErrNoRecoveryOffer):
		response.RespondJSON(c, "error", http.StatusConflict, "No draft recovery is pending", nil, nil)
	case errors.Is(err, ErrStepNotReady):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Current step is not complete", nil, nil)
	case errors.Is(err, ErrStaleLookup):
		response.RespondJSON(c, "error", http.StatusConflict, "Selection superseded by a newer edit; retry", nil, nil)
	case errors.Is(err, ErrUnknownComponent):
		response.RespondJSON(c, "error", http.StatusNotFound, "Unknown component line", nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, fallback, nil, err.Error())
	}
}
