package service

import (
	"context"
	"fmt"

	"EWaste-App/internal/domain/model"
)

// PositionProvider は端末の現在地を1回だけ取得する
type PositionProvider interface {
	CurrentPosition(ctx context.Context) (model.LatLng, error)
}

// ReportedPositionProvider はブラウザが取得した位置情報をそのまま返すプロバイダ
type ReportedPositionProvider struct {
	report model.LocateRequest
}

// NewReportedPositionProvider は新しいプロバイダを生成する
func NewReportedPositionProvider(report model.LocateRequest) *ReportedPositionProvider {
	return &ReportedPositionProvider{report: report}
}

// CurrentPosition はブラウザから報告された位置を返す
func (p *ReportedPositionProvider) CurrentPosition(ctx context.Context) (model.LatLng, error) {
	if err := ctx.Err(); err != nil {
		return model.LatLng{}, fmt.Errorf("%w: %v", model.ErrPositionUnavailable, err)
	}
	if p.report.Error != "" {
		return model.LatLng{}, fmt.Errorf("%w: %s", model.ErrPositionUnavailable, p.report.Error)
	}
	if p.report.Latitude == nil || p.report.Longitude == nil {
		return model.LatLng{}, model.ErrUnsupportedCapability
	}

	position := model.LatLng{Lat: *p.report.Latitude, Lng: *p.report.Longitude}
	if !position.IsValid() {
		return model.LatLng{}, fmt.Errorf("%w: 座標が範囲外です (%f, %f)", model.ErrPositionUnavailable, position.Lat, position.Lng)
	}
	return position, nil
}

// PositionProviderFunc は関数を PositionProvider として扱う
type PositionProviderFunc func(ctx context.Context) (model.LatLng, error)

// CurrentPosition は関数を呼び出す
func (f PositionProviderFunc) CurrentPosition(ctx context.Context) (model.LatLng, error) {
	return f(ctx)
}
