package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chatop/rental-api/internal/core/domain"
	"github.com/chatop/rental-api/internal/core/ports"
)

type MessageHandler struct {
	messageService ports.MessageService
}

func NewMessageHandler(messageService ports.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Create sends a message about a rental.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMessageRequest  true  "Message details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.messageService.Create(c.Request().Context(), ports.CreateMessageInput{
		RentalID: req.RentalID,
		UserID:   req.UserID,
		Body:     req.Message,
	})
	if err != nil {
		// A message pointing at a user or rental that does not exist is a
		// bad request, not a missing resource: the message endpoint itself
		// was found.
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrRentalNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Message send with success"})
}
