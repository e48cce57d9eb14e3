package relay

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocketHandler acepta conexiones entrantes y les da vida como sesiones.
type WebSocketHandler struct {
	registry *Registry
	router   *Router
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWebSocketHandler construye el handler de upgrade. Con allowedOrigin
// vacío se acepta cualquier origen.
func NewWebSocketHandler(registry *Registry, router *Router, allowedOrigin string, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		registry: registry,
		router:   router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
		logger: logger,
	}
}

// ServeHTTP hace el upgrade y bloquea mientras la sesión siga activa.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	session := NewSession(conn, h.registry, h.router, h.logger)
	h.logger.Info("session connected", zap.String("session_id", session.ID()))
	session.Serve()
}
