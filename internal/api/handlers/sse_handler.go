package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/providers"
)

// SSEHandler handles Server-Sent Events for real-time listing updates
type SSEHandler struct {
	eventBus providers.EventBus
	clients  map[string]map[chan *entities.ListingEvent]bool // channel -> clients
	mu       sync.RWMutex
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		clients:  make(map[string]map[chan *entities.ListingEvent]bool),
	}
}

// StreamListingUpdates handles SSE connections for catalog-wide updates
// GET /api/stream/properties
func (h *SSEHandler) StreamListingUpdates(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, providers.EventChannelListingUpdates, map[string]interface{}{
		"scope":     "catalog",
		"timestamp": time.Now(),
	})
}

// StreamListing handles SSE connections for a single property
// GET /api/stream/properties/{id}
func (h *SSEHandler) StreamListing(w http.ResponseWriter, r *http.Request) {
	propertyID := r.PathValue("id")
	if propertyID == "" {
		respondWithError(w, http.StatusBadRequest, "property ID is required")
		return
	}

	h.stream(w, r, providers.GetListingChannel(propertyID), map[string]interface{}{
		"property_id": propertyID,
		"timestamp":   time.Now(),
	})
}

func (h *SSEHandler) stream(w http.ResponseWriter, r *http.Request, channel string, hello map[string]interface{}) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	clientChan := make(chan *entities.ListingEvent, 10)
	h.registerClient(channel, clientChan)
	defer h.unregisterClient(channel, clientChan)

	// Without an event bus the stream degrades to heartbeats only
	if h.eventBus != nil {
		eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
		if err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("failed to subscribe to listing channel")
		} else {
			go h.forwardEvents(r.Context(), eventChan, clientChan)
		}
	}

	h.sendEvent(w, "connected", hello)
	flusher.Flush()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug().Str("channel", channel).Msg("client disconnected from listing stream")
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			h.sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

// forwardEvents forwards events from the event bus to a client channel
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.ListingEvent, clientChan chan<- *entities.ListingEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			select {
			case clientChan <- event:
			default:
				// Client channel full, skip event
			}
		}
	}
}

func (h *SSEHandler) registerClient(channel string, clientChan chan *entities.ListingEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[channel] == nil {
		h.clients[channel] = make(map[chan *entities.ListingEvent]bool)
	}
	h.clients[channel][clientChan] = true
	log.Debug().Str("channel", channel).Int("total", len(h.clients[channel])).Msg("sse client registered")
}

func (h *SSEHandler) unregisterClient(channel string, clientChan chan *entities.ListingEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[channel]; exists {
		delete(clients, clientChan)
		if len(clients) == 0 {
			delete(h.clients, channel)
		}
	}
}

// sendEvent sends a single SSE frame to the client
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal sse event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// GetClientCount returns the number of connected clients for debugging
func (h *SSEHandler) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}
