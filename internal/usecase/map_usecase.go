package usecase

import (
	"context"

	"EWaste-App/internal/domain/model"
	"EWaste-App/internal/domain/service"
	"EWaste-App/internal/infrastructure/metrics"
)

// MapUseCase 地図セッションに対する操作をまとめる
type MapUseCase interface {
	Initialize(container string) (snapshot model.MapSnapshot, created bool)
	Get(mapID string) (model.MapSnapshot, error)
	Teardown(mapID string) error
	Locate(ctx context.Context, mapID string, req *model.LocateRequest) (*model.LocateResponse, error)
	Search(ctx context.Context, mapID string, query string) (*model.SearchLocationResponse, error)
}

type mapUseCaseImpl struct {
	renderer service.MapRenderer
}

// NewMapUseCase は新しいMapUseCaseインスタンスを作成
func NewMapUseCase(renderer service.MapRenderer) MapUseCase {
	return &mapUseCaseImpl{renderer: renderer}
}

func (u *mapUseCaseImpl) Initialize(container string) (model.MapSnapshot, bool) {
	handle, created := u.renderer.Initialize(container)
	metrics.MapSessions.Set(float64(u.renderer.ActiveSessions()))
	return handle.Snapshot(), created
}

func (u *mapUseCaseImpl) Get(mapID string) (model.MapSnapshot, error) {
	handle, err := u.renderer.Lookup(mapID)
	if err != nil {
		return model.MapSnapshot{}, err
	}
	return handle.Snapshot(), nil
}

func (u *mapUseCaseImpl) Teardown(mapID string) error {
	handle, err := u.renderer.Lookup(mapID)
	if err != nil {
		return err
	}
	if err := u.renderer.Teardown(handle); err != nil {
		return err
	}
	metrics.MapSessions.Set(float64(u.renderer.ActiveSessions()))
	return nil
}

func (u *mapUseCaseImpl) Locate(ctx context.Context, mapID string, req *model.LocateRequest) (*model.LocateResponse, error) {
	handle, err := u.renderer.Lookup(mapID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &model.LocateRequest{}
	}

	position, err := u.renderer.LocateUser(ctx, handle, service.NewReportedPositionProvider(*req))
	if err != nil {
		return nil, err
	}
	return &model.LocateResponse{
		UserLocation: position,
		Map:          handle.Snapshot(),
		Notification: model.LocationFoundNotification(),
	}, nil
}

func (u *mapUseCaseImpl) Search(ctx context.Context, mapID string, query string) (*model.SearchLocationResponse, error) {
	handle, err := u.renderer.Lookup(mapID)
	if err != nil {
		return nil, err
	}

	result, err := u.renderer.SearchLocation(ctx, handle, query)
	if err != nil {
		return nil, err
	}
	return &model.SearchLocationResponse{
		Result:       *result,
		Map:          handle.Snapshot(),
		Notification: model.SearchFoundNotification(result.DisplayName),
	}, nil
}
