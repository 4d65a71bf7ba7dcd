package model

// Notification 画面に一時表示する通知（トースト）
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// NewNotification 通常の通知を作成
func NewNotification(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

// NewErrorNotification エラー通知を作成
func NewErrorNotification(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDestructive}
}

// LocationFoundNotification 現在地取得成功の通知
func LocationFoundNotification() Notification {
	return NewNotification("Location found!", "Map centered on your current location.")
}

// SearchFoundNotification 地名検索成功の通知
func SearchFoundNotification(displayName string) Notification {
	return NewNotification("Location found!", "Showing results for: "+displayName)
}

// SuggestionRecordedNotification 提案受付の通知
func SuggestionRecordedNotification() Notification {
	return NewNotification("Thank you!", "Your center suggestion has been recorded.")
}
