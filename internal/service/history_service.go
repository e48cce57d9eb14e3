package service

import (
	"context"
	"errors"
	"strings"

	"chat-relay/internal/domain"
	"chat-relay/internal/repository"
)

// HistoryService encapsula la lectura del historial de mensajes por
// categoría.
type HistoryService struct {
	repo repository.MessageRepository
}

var ErrHistoryServiceNotConfigured = errors.New("history service not configured")

func NewHistoryService(repo repository.MessageRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

func (s *HistoryService) ListByCategory(ctx context.Context, category string) ([]domain.Message, error) {
	if s == nil || s.repo == nil {
		return nil, ErrHistoryServiceNotConfigured
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return []domain.Message{}, nil
	}
	messages, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}
