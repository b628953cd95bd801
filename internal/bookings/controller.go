package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"eventcraft/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	LookupBooking(c *gin.Context)
	ListBookings(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// LookupBooking returns a booking record by its reference string
func (ctrl *controller) LookupBooking(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Booking reference is required", nil, nil)
		return
	}

	record, err := ctrl.service.GetByReference(c.Request.Context(), reference)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Booking not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Booking lookup failed", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", record, nil)
}

// ListBookings returns booking records, optionally filtered by status
func (ctrl *controller) ListBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	status := c.Query("status")

	records, err := ctrl.service.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", records, nil)
}
