package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"EWaste-App/internal/domain/model"
	"EWaste-App/internal/domain/repository"
)

type SuggestionUseCase interface {
	// Submit は提案フォームの入力を検証し、提案リストに1件追加する
	Submit(ctx context.Context, req *model.SuggestCenterRequest) (*model.SuggestCenterResponse, error)

	// List は保存済みの提案を返す
	List(ctx context.Context) ([]model.SuggestedCenter, error)
}

// suggestionUseCaseImpl はSuggestionUseCaseの実装
type suggestionUseCaseImpl struct {
	repo           repository.SuggestionsRepository
	publisher      repository.SuggestionEventPublisher // nilなら送信しない
	publishTimeout time.Duration
	delay          time.Duration
	now            func() time.Time
	busy           atomic.Bool
}

// DefaultPublishTimeout 提案イベント送信の上限時間
const DefaultPublishTimeout = 3 * time.Second

// SuggestionOption は生成時のオプション
type SuggestionOption func(*suggestionUseCaseImpl)

// WithSubmitDelay 送信時の待ち時間を変更する
func WithSubmitDelay(d time.Duration) SuggestionOption {
	return func(u *suggestionUseCaseImpl) {
		u.delay = d
	}
}

// WithEventPublisher 保存後に提案イベントを送信する
func WithEventPublisher(p repository.SuggestionEventPublisher) SuggestionOption {
	return func(u *suggestionUseCaseImpl) {
		u.publisher = p
	}
}

// WithPublishTimeout 提案イベント送信の上限時間を変更する
func WithPublishTimeout(d time.Duration) SuggestionOption {
	return func(u *suggestionUseCaseImpl) {
		if d > 0 {
			u.publishTimeout = d
		}
	}
}

// WithClock 現在時刻の取得方法を差し替える
func WithClock(now func() time.Time) SuggestionOption {
	return func(u *suggestionUseCaseImpl) {
		u.now = now
	}
}

// NewSuggestionUseCase は新しいSuggestionUseCaseインスタンスを作成
func NewSuggestionUseCase(repo repository.SuggestionsRepository, opts ...SuggestionOption) SuggestionUseCase {
	u := &suggestionUseCaseImpl{
		repo:  repo,
		delay:          model.DefaultSubmitDelay,
		now:            time.Now,
		publishTimeout: DefaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *suggestionUseCaseImpl) Submit(ctx context.Context, req *model.SuggestCenterRequest) (*model.SuggestCenterResponse, error) {
	if req == nil {
		req = &model.SuggestCenterRequest{}
	}
	if field := req.MissingField(); field != "" {
		return nil, &model.MissingFieldError{Field: field}
	}

	suggestion, err := u.store(ctx, req)
	if err != nil {
		return nil, err
	}

	// 受付フラグを解放してから送信する
	if u.publisher != nil {
		u.publish(ctx, suggestion)
	}

	return &model.SuggestCenterResponse{
		Status:           "recorded",
		Suggestion:       suggestion,
		FormResetAfterMs: model.FormResetDelay.Milliseconds(),
		Notification:     model.SuggestionRecordedNotification(),
	}, nil
}

// store は待ち時間のあと提案リストに1件追加する。実行中は他の送信を受け付けない
func (u *suggestionUseCaseImpl) store(ctx context.Context, req *model.SuggestCenterRequest) (model.SuggestedCenter, error) {
	if !u.busy.CompareAndSwap(false, true) {
		return model.SuggestedCenter{}, model.ErrSubmissionInProgress
	}
	defer u.busy.Store(false)

	log.Printf("📝 センター提案を受付 (name: %s, city: %s)", req.Name, req.City)

	if u.delay > 0 {
		timer := time.NewTimer(u.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return model.SuggestedCenter{}, fmt.Errorf("提案の送信が中断されました: %w", ctx.Err())
		case <-timer.C:
		}
	}

	suggestion := model.SuggestedCenter{
		Name:          strings.TrimSpace(req.Name),
		Address:       strings.TrimSpace(req.Address),
		City:          strings.TrimSpace(req.City),
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		Website:       strings.TrimSpace(req.Website),
		Timestamp:     u.now().UTC().Format(time.RFC3339),
	}

	existing, err := u.repo.GetAll(ctx)
	if err != nil {
		return model.SuggestedCenter{}, fmt.Errorf("提案リストの読み込みに失敗: %w", err)
	}
	updated := append(existing, suggestion)
	if err := u.repo.SaveAll(ctx, updated); err != nil {
		return model.SuggestedCenter{}, fmt.Errorf("提案の保存に失敗: %w", err)
	}
	log.Printf("✅ センター提案を保存 (合計: %d件)", len(updated))
	return suggestion, nil
}

// publish はリクエストのキャンセルと切り離し、publishTimeoutを上限に送信する
func (u *suggestionUseCaseImpl) publish(ctx context.Context, suggestion model.SuggestedCenter) {
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.publishTimeout)
	defer cancel()

	if err := u.publisher.PublishSuggestion(publishCtx, suggestion); err != nil {
		log.Printf("⚠️ 提案イベントの送信に失敗: %v", err)
	}
}

func (u *suggestionUseCaseImpl) List(ctx context.Context) ([]model.SuggestedCenter, error) {
	return u.repo.GetAll(ctx)
}
