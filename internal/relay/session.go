package relay

import (
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBufferSize = 64
)

// Session representa una conexión de cliente viva y sus membresías. La
// desconexión (normal o abrupta) dispara exactamente una limpieza: DropAll
// en el registry y cierre de la conexión. Una sesión terminada no procesa
// más eventos; reconectar produce una sesión nueva con id nuevo.
type Session struct {
	id       string
	conn     *websocket.Conn
	registry *Registry
	router   *Router
	send     chan []byte
	joined   map[string]struct{}
	logger   *zap.Logger
}

func NewSession(conn *websocket.Conn, registry *Registry, router *Router, logger *zap.Logger) *Session {
	return &Session{
		id:       uuid.NewString(),
		conn:     conn,
		registry: registry,
		router:   router,
		send:     make(chan []byte, sendBufferSize),
		joined:   make(map[string]struct{}),
		logger:   logger,
	}
}

// ID devuelve el identificador opaco de la sesión.
func (s *Session) ID() string { return s.id }

// Serve atiende la conexión hasta la desconexión.
func (s *Session) Serve() {
	defer s.cleanup()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go s.writeLoop(done)

	s.readLoop()
}

func (s *Session) cleanup() {
	s.registry.DropAll(s)
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.logger.Info("session disconnected", zap.String("session_id", s.id))
}

func (s *Session) readLoop() {
	for {
		var env Envelope
		if err := s.conn.ReadJSON(&env); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || errors.Is(err, io.EOF) {
				return
			}
			s.logger.Warn("read error", zap.String("session_id", s.id), zap.Error(err))
			return
		}
		s.handleEvent(env)
	}
}

func (s *Session) handleEvent(env Envelope) {
	switch env.Event {
	case EventJoinCategory:
		s.joinCategory(env.Category)
	case EventLeaveCategory:
		s.leaveCategory(env.Category)
	case EventSendMessage:
		// Enviar no requiere ni provoca membresía en la categoría destino.
		s.router.HandleSend(s, env)
	default:
		s.logger.Warn("unknown event",
			zap.String("session_id", s.id),
			zap.String("event", env.Event),
		)
	}
}

func (s *Session) joinCategory(category string) {
	if category == "" {
		return
	}
	s.joined[category] = struct{}{}
	s.registry.Join(s, category)
}

func (s *Session) leaveCategory(category string) {
	if category == "" {
		return
	}
	delete(s.joined, category)
	s.registry.Leave(s, category)
}

// Enqueue encola un payload para entrega asíncrona; descarta si el buffer
// está lleno para que un cliente lento nunca bloquee el fan-out.
func (s *Session) Enqueue(payload []byte) {
	select {
	case s.send <- payload:
	default:
		s.logger.Warn("send buffer full, dropping message", zap.String("session_id", s.id))
	}
}

func (s *Session) writeLoop(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case payload := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				s.logger.Warn("write error", zap.String("session_id", s.id), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
