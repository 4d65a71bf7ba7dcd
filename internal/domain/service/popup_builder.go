package service

import (
	"bytes"
	"html/template"
	"log"
	"strings"

	"EWaste-App/internal/domain/helper"
	"EWaste-App/internal/domain/model"
)

var popupTemplate = template.Must(template.New("popup").Parse(`<div class="center-popup">
<div class="center-popup__title"><span>♻</span><h3>{{.Title}}</h3></div>
<div class="center-popup__body">
<div>📍 {{.Address}}</div>
{{- if .Phone}}
<div>📞 {{.Phone}}</div>
{{- end}}
{{- if .Email}}
<div>✉️ {{.Email}}</div>
{{- end}}
{{- if .Hours}}
<div>🕒 {{.Hours}}</div>
{{- end}}
{{- if .AcceptedItems}}
<div class="center-popup__items"><p>Accepted Items:</p>{{range .AcceptedItems}}<span>{{.}}</span>{{end}}</div>
{{- end}}
{{- if .DistanceText}}
<div class="center-popup__distance">Distance: {{.DistanceText}}</div>
{{- end}}
</div>
</div>`))

// BuildPopup はセンターのポップアップを作成する
// userLocation が nil でなければ距離を付与する
func BuildPopup(center *model.RecyclingCenter, userLocation *model.LatLng) model.Popup {
	popup := model.Popup{
		Title:   center.Name,
		Address: center.Address,
		Phone:   center.Phone,
		Email:   center.Email,
		Hours:   center.Hours,
	}
	if len(center.AcceptedItems) > 0 {
		popup.AcceptedItems = append([]string(nil), center.AcceptedItems...)
	}

	if userLocation != nil {
		km := helper.DistanceToCenter(*userLocation, center)
		popup.DistanceKm = &km
		popup.DistanceText = helper.FormatDistance(km)
	}

	popup.HTML = renderPopupHTML(&popup)
	return popup
}

// BuildUserPopup は現在地マーカーのポップアップを作成する
func BuildUserPopup() model.Popup {
	return model.Popup{
		Title: model.UserMarkerLabel,
		HTML:  "<div>" + template.HTMLEscapeString(model.UserMarkerLabel) + "</div>",
	}
}

// PopupText はポップアップをプレーンテキストにする
func PopupText(p *model.Popup) string {
	lines := []string{p.Title}
	for _, v := range []string{p.Address, p.Phone, p.Email, p.Hours} {
		if v != "" {
			lines = append(lines, v)
		}
	}
	if len(p.AcceptedItems) > 0 {
		lines = append(lines, "Accepted Items: "+strings.Join(p.AcceptedItems, ", "))
	}
	if p.DistanceText != "" {
		lines = append(lines, "Distance: "+p.DistanceText)
	}
	return strings.Join(lines, "\n")
}

func renderPopupHTML(p *model.Popup) string {
	var buf bytes.Buffer
	if err := popupTemplate.Execute(&buf, p); err != nil {
		log.Printf("⚠️ ポップアップHTMLの生成に失敗: %v", err)
		return template.HTMLEscapeString(PopupText(p))
	}
	return buf.String()
}
