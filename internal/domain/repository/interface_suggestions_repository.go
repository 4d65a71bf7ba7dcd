package repository

import (
	"context"

	"EWaste-App/internal/domain/model"
)

// SuggestionsRepository センター提案リストの読み書き（リスト全体単位）
type SuggestionsRepository interface {
	GetAll(ctx context.Context) ([]model.SuggestedCenter, error)
	SaveAll(ctx context.Context, suggestions []model.SuggestedCenter) error
}

// SuggestionEventPublisher 保存済みの提案を外部へ通知する
type SuggestionEventPublisher interface {
	PublishSuggestion(ctx context.Context, suggestion model.SuggestedCenter) error
}
