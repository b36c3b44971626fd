package locations

import (
	"errors"
	"net/http"

	"ticketapp/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateLocation(c *gin.Context)
	GetLocation(c *gin.Context)
	GetAllLocations(c *gin.Context)
	UpdateLocation(c *gin.Context)
	DeleteLocation(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	location, err := ctrl.service.CreateLocation(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Location created successfully", location, nil)
}

func (ctrl *controller) GetLocation(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("locationId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid location ID", nil, err.Error())
		return
	}

	location, err := ctrl.service.GetLocationByID(c.Request.Context(), locationID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrLocationNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Location retrieved successfully", location, nil)
}

func (ctrl *controller) GetAllLocations(c *gin.Context) {
	locations, err := ctrl.service.GetAllLocations(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve locations", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Locations retrieved successfully", locations, nil)
}

func (ctrl *controller) UpdateLocation(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("locationId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid location ID", nil, err.Error())
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	location, err := ctrl.service.UpdateLocation(c.Request.Context(), locationID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrLocationNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Location updated successfully", location, nil)
}

func (ctrl *controller) DeleteLocation(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("locationId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid location ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteLocation(c.Request.Context(), locationID); err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrLocationNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Location deleted successfully", nil, nil)
}
