package events

import (
	"errors"
	"net/http"
	"strconv"

	"eventcraft/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	GetEvent(c *gin.Context)
	ListEvents(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetEvent returns a finalized event with its wedding sub-record if present
func (ctrl *controller) GetEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	event, err := ctrl.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get event", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

// ListEvents returns events, scoped to the caller unless mine=false and the
// caller is an admin
func (ctrl *controller) ListEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var staffID *uuid.UUID
	mine := c.DefaultQuery("mine", "true")
	role, _ := c.Get("user_role")
	if mine == "true" || role != "ADMIN" {
		userID, exists := c.Get("user_id")
		if !exists {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
			return
		}
		id, err := uuid.Parse(userID.(string))
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid user ID", nil, nil)
			return
		}
		staffID = &id
	}

	events, err := ctrl.service.ListEvents(c.Request.Context(), staffID, limit, offset)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list events", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Events retrieved successfully", events, nil)
}
