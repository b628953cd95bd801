package catalog

import (
	"errors"
	"net/http"

	"eventcraft/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetPackages(c *gin.Context)
	GetPackageDetail(c *gin.Context)
	CreatePackage(c *gin.Context)
	UpdatePackage(c *gin.Context)
	DeletePackage(c *gin.Context)

	GetVenues(c *gin.Context)
	GetVenue(c *gin.Context)
	CreateVenue(c *gin.Context)
	UpdateVenue(c *gin.Context)
	DeleteVenue(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetPackages(c *gin.Context) {
	packages, err := ctrl.service.GetPackages(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve packages", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Packages retrieved successfully", packages, nil)
}

func (ctrl *controller) GetPackageDetail(c *gin.Context) {
	pkg, err := ctrl.service.GetPackageDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrPackageNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Package retrieved successfully", pkg, nil)
}

func (ctrl *controller) CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	pkg, err := ctrl.service.CreatePackage(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Package created successfully", pkg, nil)
}

func (ctrl *controller) UpdatePackage(c *gin.Context) {
	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	pkg, err := ctrl.service.UpdatePackage(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrPackageNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Package updated successfully", pkg, nil)
}

func (ctrl *controller) DeletePackage(c *gin.Context) {
	if err := ctrl.service.DeletePackage(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Package deleted successfully", nil, nil)
}

func (ctrl *controller) GetVenues(c *gin.Context) {
	venues, err := ctrl.service.GetVenues(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve venues", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Venues retrieved successfully", venues, nil)
}

func (ctrl *controller) GetVenue(c *gin.Context) {
	venue, err := ctrl.service.GetVenueByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrVenueNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Venue retrieved successfully", venue, nil)
}

func (ctrl *controller) CreateVenue(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	venue, err := ctrl.service.CreateVenue(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Venue created successfully", venue, nil)
}

func (ctrl *controller) UpdateVenue(c *gin.Context) {
	var req UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	venue, err := ctrl.service.UpdateVenue(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrVenueNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Venue updated successfully", venue, nil)
}

func (ctrl *controller) DeleteVenue(c *gin.Context) {
	if err := ctrl.service.DeleteVenue(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Venue deleted successfully", nil, nil)
}
