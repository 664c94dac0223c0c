package webhook

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oekaki/charabot/pkg/conversation"
	"github.com/oekaki/charabot/pkg/logger"
)

// Dispatcher is the surface the handler feeds decoded events into.
type Dispatcher interface {
	Dispatch(ctx context.Context, userID string, ev conversation.Event)
}

// inboundEvent is one decoded webhook event. Image bytes arrive base64
// encoded, the way the upstream relay ships them.
type inboundEvent struct {
	UserID   string `json:"userId"`
	Type     string `json:"type"` // "text" or "image"
	Text     string `json:"text,omitempty"`
	Image    string `json:"image,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
}

type envelope struct {
	Events []inboundEvent `json:"events"`
}

// Handler receives webhook batches and dispatches each event.
type Handler struct {
	dispatcher Dispatcher
	log        *slog.Logger
}

// Option configures the handler.
type Option func(*Handler)

// WithLogger supplies a logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHandler creates a webhook handler.
func NewHandler(d Dispatcher, opts ...Option) *Handler {
	h := &Handler{
		dispatcher: d,
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle returns the router for mounting, e.g. r.Mount("/webhook", h.Handle()).
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.receive)
	return r
}

func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	var body envelope
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.log.WarnContext(r.Context(), "malformed webhook body", logger.Error(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	for _, raw := range body.Events {
		ev, ok := h.decode(r.Context(), raw)
		if !ok {
			continue
		}
		// Each event is handled to completion before the batch is
		// acknowledged; the dispatcher contains per-event failures.
		h.dispatcher.Dispatch(r.Context(), raw.UserID, ev)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) decode(ctx context.Context, raw inboundEvent) (conversation.Event, bool) {
	if raw.UserID == "" {
		h.log.WarnContext(ctx, "skipping event without user id")
		return conversation.Event{}, false
	}

	switch raw.Type {
	case "text":
		return conversation.Event{Type: conversation.EventText, Text: raw.Text}, true
	case "image":
		data, err := base64.StdEncoding.DecodeString(raw.Image)
		if err != nil {
			h.log.WarnContext(ctx, "skipping event with undecodable image",
				logger.UserID(raw.UserID), logger.Error(err))
			return conversation.Event{}, false
		}
		mime := raw.MIMEType
		if mime == "" {
			mime = "image/jpeg"
		}
		return conversation.Event{Type: conversation.EventImage, Image: data, MIMEType: mime}, true
	default:
		h.log.WarnContext(ctx, "skipping event of unknown type",
			logger.UserID(raw.UserID), slog.String("type", raw.Type))
		return conversation.Event{}, false
	}
}
