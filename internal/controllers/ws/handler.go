package ws

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Agrid-Dev/energydash/internal/heatpump"
	"github.com/Agrid-Dev/energydash/internal/ports"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades connections, registers them on the hub and sends the
// current report straight away. Inbound messages are ignored; writes go through
// the HTTP or MQTT controllers.
type Handler struct {
	hub      *Hub
	svc      ports.DashboardService
	deviceID string
}

func NewHandler(hub *Hub, svc ports.DashboardService, deviceID string) *Handler {
	return &Handler{hub: hub, svc: svc, deviceID: deviceID}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.hub.log.WithError(err).Warn("ws upgrade failed")
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 16),
	}

	h.hub.Register(client)
	go client.writePump()

	if msg, err := reportMessage(h.deviceID, h.svc.Report()); err == nil {
		select {
		case client.send <- msg:
		default:
		}
	}

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.hub.log.WithError(err).Debug("ws read error")
			}
			return
		}
	}
}

func reportMessage(deviceID string, r heatpump.Report) ([]byte, error) {
	return NewEnvelope(TypeReport, ReportPayload{DeviceID: deviceID, Report: r})
}
