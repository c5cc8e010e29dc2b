package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// sseChannels are the channels a client may stream.
var sseChannels = map[string]bool{
	ports.ChannelOrders:        true,
	ports.ChannelPartners:      true,
	ports.ChannelNotifications: true,
}

// StreamEvents handles GET /api/v1/events?channel=orders as a
// Server-Sent Events stream. Subscription starts at the moment of
// connection: there is no backlog, reconnecting clients re-fetch current
// state through the queries before resuming the stream.
func (s *Server) StreamEvents(ctx echo.Context) error {
	channel := ctx.QueryParam("channel")
	if !sseChannels[channel] {
		return badRequest(ctx, errors.New("unknown channel"))
	}

	w := ctx.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	events := make(chan ports.Event, 16)
	unsubscribe := s.bus.Subscribe(channel, func(event ports.Event) {
		select {
		case events <- event:
		default:
			// The HTTP writer is slower than the stream; skip rather
			// than block the bus.
		}
	})
	defer unsubscribe()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case event := <-events:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}

			if _, err = w.Write([]byte("data: ")); err != nil {
				return nil
			}
			if _, err = w.Write(data); err != nil {
				return nil
			}
			if _, err = w.Write([]byte("\n\n")); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
