package model

import "errors"

var (
	// ErrUnsupportedCapability 端末に位置情報機能がない
	ErrUnsupportedCapability = errors.New("geolocation is not supported")
	// ErrPositionUnavailable 現在地の取得に失敗した
	ErrPositionUnavailable = errors.New("position unavailable")
	// ErrLocationNotFound 地名検索の結果が0件
	ErrLocationNotFound = errors.New("location not found")
	// ErrSearchTransport 地名検索の通信・パースに失敗した
	ErrSearchTransport = errors.New("location search failed")
	// ErrMissingRequiredField 提案フォームの必須項目が未入力
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrMapNotInitialized 地図が未作成または破棄済み
	ErrMapNotInitialized = errors.New("map is not initialized")
	// ErrSearchInProgress 同じ地図で検索中
	ErrSearchInProgress = errors.New("a location search is already in progress")
	// ErrSubmissionInProgress 別の提案を保存中（全利用者で共通）
	ErrSubmissionInProgress = errors.New("a suggestion is already being submitted")
	// ErrEmptyQuery 検索語が空
	ErrEmptyQuery = errors.New("search query is empty")
)

// MissingFieldError 未入力の必須項目を表す
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return ErrMissingRequiredField.Error() + ": " + e.Field
}

// Unwrap errors.Is(err, ErrMissingRequiredField) を成立させる
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingRequiredField
}
