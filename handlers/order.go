package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"nft-tickets-backend/metrics"
	"nft-tickets-backend/models"
	"nft-tickets-backend/store"
)

type OrderStore interface {
	CreateOrder(ctx context.Context, ord *models.Order) error
	ListOrdersByAddress(ctx context.Context, address string) ([]models.OrderWithEvent, error)
}

type OrderHandler struct {
	store OrderStore
	log   zerolog.Logger
}

func NewOrderHandler(store OrderStore, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{store: store, log: log}
}

// CreatePurchase places a purchase order for the authenticated caller. The
// store rejects it when the event is missing or the remaining capacity is
// insufficient; an accepted order starts out pending until the external
// confirmation process settles it.
func (h *OrderHandler) CreatePurchase(c *gin.Context) {
	var req models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ord := models.Order{
		UserAddress: CallerAddress(c),
		EventID:     req.EventID,
		Quantity:    req.Quantity,
		SeatType:    req.SeatType,
	}
	if req.TxHash != "" {
		ord.TxHash = &req.TxHash
	}

	err := h.store.CreateOrder(c, &ord)
	switch {
	case errors.Is(err, store.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	case errors.Is(err, store.ErrInsufficientCapacity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough tickets available"})
		return
	case err != nil:
		h.log.Error().Err(err).Int64("event_id", req.EventID).Msg("purchase failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	metrics.OrdersCreatedTotal.Inc()
	h.log.Info().
		Int64("order_id", ord.ID).
		Int64("event_id", ord.EventID).
		Int("quantity", ord.Quantity).
		Str("address", ord.UserAddress).
		Msg("order created")

	c.JSON(http.StatusCreated, models.PurchaseResponse{
		OrderID:    ord.ID,
		Status:     ord.Status,
		TotalPrice: ord.TotalPrice,
		Message:    "Order created successfully. Waiting for blockchain confirmation.",
	})
}

// ListOrders returns the caller's orders, most recent first.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.store.ListOrdersByAddress(c, CallerAddress(c))
	if err != nil {
		h.log.Error().Err(err).Msg("order listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if orders == nil {
		orders = []models.OrderWithEvent{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
