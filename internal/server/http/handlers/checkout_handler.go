package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/usecase"
)

// CheckoutHandler processes checkout submissions.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler creates CheckoutHandler instance.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Checkout handles POST /api/checkout.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed request body"})
		return
	}

	confirmation, err := h.facade.Checkout(c.Request.Context(), CurrentSessionID(c), CurrentUserID(c), toCheckoutRequest(req))
	if err != nil {
		var validation *domainErrors.ValidationError
		var rejected *domainErrors.PaymentRejectedError
		switch {
		case errors.Is(err, domainErrors.ErrAlreadyProcessing):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
		case errors.As(err, &validation):
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Field: validation.Field, Message: validation.Message})
		case errors.As(err, &rejected):
			c.JSON(http.StatusPaymentRequired, dto.ErrorResponse{Message: rejected.Message})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "checkout failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		OrderNumber:      confirmation.Order.Number,
		Total:            confirmation.Order.Total,
		NotificationSent: confirmation.NotificationSent,
	})
}

func toCheckoutRequest(req dto.CheckoutRequest) usecase.CheckoutRequest {
	lines := make([]usecase.CartLineInput, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		lines = append(lines, usecase.CartLineInput{
			ID:       item.ProductID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	return usecase.CheckoutRequest{
		Lines: lines,
		Customer: model.Customer{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Address:  req.Address,
			Address2: req.Address2,
			City:     req.City,
			Postcode: req.Postcode,
			Country:  req.Country,
		},
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
		CVV:        req.CVV,
	}
}
