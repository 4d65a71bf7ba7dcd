package model

import "strings"

// SuggestCenterRequest センター提案フォームの入力
type SuggestCenterRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	ContactNumber string `json:"contact_number"`
	Website       string `json:"website,omitempty"` // 任意
}

// MissingField 必須項目のうち未入力の最初の項目名を返す（全て入力済みなら空文字）
func (r *SuggestCenterRequest) MissingField() string {
	required := []struct {
		field string
		value string
	}{
		{"name", r.Name},
		{"address", r.Address},
		{"city", r.City},
		{"contact_number", r.ContactNumber},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return f.field
		}
	}
	return ""
}

// SuggestedCenter 受け付けた提案レコード（保存形式はリポジトリ側で定義）
type SuggestedCenter struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	ContactNumber string `json:"contact_number"`
	Website       string `json:"website,omitempty"`
	Timestamp     string `json:"timestamp"` // RFC 3339 (UTC)
}

// SuggestCenterResponse 提案送信のレスポンス
type SuggestCenterResponse struct {
	Status           string          `json:"status"`
	Suggestion       SuggestedCenter `json:"suggestion"`
	FormResetAfterMs int64           `json:"form_reset_after_ms"`
	Notification     Notification    `json:"notification"`
}
