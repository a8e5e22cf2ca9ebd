package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"nft-tickets-backend/models"
	"nft-tickets-backend/store"
)

type EventStore interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
}

type EventHandler struct {
	store EventStore
	log   zerolog.Logger
}

func NewEventHandler(store EventStore, log zerolog.Logger) *EventHandler {
	return &EventHandler{store: store, log: log}
}

// ListEvents returns all events ordered by ascending date.
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.store.ListEvents(c)
	if err != nil {
		h.log.Error().Err(err).Msg("event listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	responses := make([]models.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, events[i].Response())
	}
	c.JSON(http.StatusOK, gin.H{"events": responses})
}

// GetEvent returns a single event by id.
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	event, err := h.store.GetEvent(c, id)
	if errors.Is(err, store.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("event_id", id).Msg("event lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, event.Response())
}
