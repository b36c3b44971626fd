package tickets

import (
	"context"
	"errors"
	"net/http"

	"ticketapp/internal/events"
	"ticketapp/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	PurchaseTicket(c *gin.Context)
	GetTicket(c *gin.Context)
	GetMyTickets(c *gin.Context)
	PayTicket(c *gin.Context)
	CancelTicket(c *gin.Context)
	GetOccupiedSeats(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) PurchaseTicket(c *gin.Context) {
	var req PurchaseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, err := authenticatedUserID(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	ticket, err := ctrl.service.PurchaseTicket(c.Request.Context(), userID, req)
	if err != nil {
		statusCode := ticketErrorStatus(err)
		switch {
		case errors.Is(err, ErrSeatUnavailable):
			statusCode = http.StatusConflict
		case errors.Is(err, ErrEventNotOpen):
			statusCode = http.StatusUnprocessableEntity
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Ticket purchased successfully", ticket, nil)
}

func (ctrl *controller) GetTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	userID, err := authenticatedUserID(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	ticket, err := ctrl.service.GetTicketByID(c.Request.Context(), userID, ticketID)
	if err != nil {
		response.RespondJSON(c, "error", ticketErrorStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket retrieved successfully", ticket, nil)
}

func (ctrl *controller) GetMyTickets(c *gin.Context) {
	userID, err := authenticatedUserID(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	result, err := ctrl.service.GetUserTickets(c.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve tickets", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Tickets retrieved successfully", result, nil)
}

func (ctrl *controller) PayTicket(c *gin.Context) {
	ctrl.transition(c, ctrl.service.PayTicket, "Ticket paid successfully")
}

func (ctrl *controller) CancelTicket(c *gin.Context) {
	ctrl.transition(c, ctrl.service.CancelTicket, "Ticket cancelled successfully")
}

// GetOccupiedSeats handles GET /tickets/occupied/:eventId
func (ctrl *controller) GetOccupiedSeats(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	occupied, err := ctrl.service.GetOccupiedSeats(c.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(c, "error", ticketErrorStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Occupied seats retrieved successfully", occupied, nil)
}

func (ctrl *controller) transition(c *gin.Context, fn func(ctx context.Context, userID, ticketID uuid.UUID) (*TicketResponse, error), message string) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, err.Error())
		return
	}

	userID, err := authenticatedUserID(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	ticket, err := fn(c.Request.Context(), userID, ticketID)
	if err != nil {
		response.RespondJSON(c, "error", ticketErrorStatus(err), err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, message, ticket, nil)
}

func ticketErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrTicketNotFound), errors.Is(err, events.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotTicketOwner):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidStatus):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func authenticatedUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, errors.New("user not authenticated")
	}
	return uuid.Parse(raw.(string))
}
