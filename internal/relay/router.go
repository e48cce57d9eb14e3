package relay

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chat-relay/internal/domain"
	"chat-relay/internal/repository"
)

const persistTimeout = 5 * time.Second

// RateLimiter limita mensajes entrantes por sesión. Una implementación nil
// permite todo.
type RateLimiter interface {
	Allow(key string) bool
}

// Router valida mensajes entrantes, calcula el fan-out contra el registry y
// despacha la persistencia de forma independiente: la entrega en vivo nunca
// espera al store y un fallo de append no revierte un broadcast ya emitido.
type Router struct {
	logger   *zap.Logger
	registry *Registry
	messages repository.MessageRepository
	limiter  RateLimiter
}

func NewRouter(logger *zap.Logger, registry *Registry, messages repository.MessageRepository, limiter RateLimiter) *Router {
	return &Router{
		logger:   logger,
		registry: registry,
		messages: messages,
		limiter:  limiter,
	}
}

// HandleSend procesa un evento sendMessage de la sesión emisora. Un payload
// malformado se descarta sin respuesta al cliente (se registra en el log del
// servidor). El emisor recibe su propio mensaje solo si es miembro de la
// categoría.
func (r *Router) HandleSend(sender *Session, env Envelope) {
	if r.limiter != nil && !r.limiter.Allow(sender.ID()) {
		r.logger.Warn("rate limit exceeded, dropping message",
			zap.String("session_id", sender.ID()),
		)
		return
	}

	category := strings.TrimSpace(env.Category)
	body := strings.TrimSpace(env.Body)
	if category == "" || body == "" {
		r.logger.Warn("dropping malformed message",
			zap.String("session_id", sender.ID()),
			zap.Bool("missing_category", category == ""),
			zap.Bool("missing_body", body == ""),
		)
		return
	}

	msg := domain.Message{
		ID:          uuid.NewString(),
		UserID:      env.UserID,
		DisplayName: env.DisplayName,
		Body:        body,
		AvatarRef:   env.AvatarRef,
		Category:    category,
		CreatedAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(OutboundMessage{
		Event:    EventMessage,
		Category: msg.Category,
		Message:  msg,
	})
	if err != nil {
		r.logger.Error("marshal outbound message failed", zap.Error(err))
		return
	}

	members := r.registry.MembersOf(msg.Category)
	for _, member := range members {
		member.Enqueue(payload)
	}
	r.logger.Info("message broadcast",
		zap.String("category", msg.Category),
		zap.String("user_id", msg.UserID),
		zap.Int("recipients", len(members)),
	)

	// Persistencia desacoplada del broadcast: el fallo solo se registra.
	go func(msg domain.Message) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := r.messages.Create(ctx, msg); err != nil {
			r.logger.Error("save message failed",
				zap.Error(err),
				zap.String("category", msg.Category),
			)
		}
	}(msg)
}
