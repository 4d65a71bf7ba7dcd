package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"EWaste-App/internal/domain/model"
	"EWaste-App/internal/infrastructure/metrics"
)

// errorMapping エラーごとのHTTPステータスと通知内容
type errorMapping struct {
	target       error
	status       int
	code         string
	outcome      string
	notification model.Notification
}

var errorMappings = []errorMapping{
	{
		target:       model.ErrMissingRequiredField,
		status:       http.StatusBadRequest,
		code:         "missing_required_field",
		outcome:      metrics.OutcomeInvalid,
		notification: model.NewErrorNotification("Please fill all required fields", "Name, address, city, and contact number are required."),
	},
	{
		target:       model.ErrUnsupportedCapability,
		status:       http.StatusUnprocessableEntity,
		code:         "geolocation_unsupported",
		outcome:      metrics.OutcomeUnsupported,
		notification: model.NewErrorNotification("Geolocation not supported", "Your browser doesn't support geolocation."),
	},
	{
		target:       model.ErrPositionUnavailable,
		status:       http.StatusUnprocessableEntity,
		code:         "position_unavailable",
		outcome:      metrics.OutcomeError,
		notification: model.NewErrorNotification("Location error", "Unable to retrieve your location. Please try again."),
	},
	{
		target:       model.ErrLocationNotFound,
		status:       http.StatusNotFound,
		code:         "location_not_found",
		outcome:      metrics.OutcomeNotFound,
		notification: model.NewErrorNotification("Location not found", "Please try a different search term."),
	},
	{
		target:       model.ErrSearchTransport,
		status:       http.StatusBadGateway,
		code:         "search_failed",
		outcome:      metrics.OutcomeError,
		notification: model.NewErrorNotification("Search error", "Unable to search for location. Please try again."),
	},
	{
		target:       model.ErrEmptyQuery,
		status:       http.StatusBadRequest,
		code:         "empty_query",
		outcome:      metrics.OutcomeInvalid,
		notification: model.NewErrorNotification("Search term required", "Please enter a location to search."),
	},
	{
		target:       model.ErrSearchInProgress,
		status:       http.StatusConflict,
		code:         "search_in_progress",
		outcome:      metrics.OutcomeBusy,
		notification: model.NewErrorNotification("Search in progress", "Please wait for the current search to finish."),
	},
	{
		target:       model.ErrSubmissionInProgress,
		status:       http.StatusConflict,
		code:         "submission_in_progress",
		outcome:      metrics.OutcomeBusy,
		notification: model.NewErrorNotification("Submission in progress", "Another suggestion is being saved right now, possibly from another visitor. Please try again in a moment."),
	},
	{
		target:       model.ErrMapNotInitialized,
		status:       http.StatusNotFound,
		code:         "map_not_found",
		outcome:      metrics.OutcomeInvalid,
		notification: model.NewErrorNotification("Map not ready", "Please reload the map and try again."),
	},
}

var internalErrorMapping = errorMapping{
	status:       http.StatusInternalServerError,
	code:         "internal_error",
	outcome:      metrics.OutcomeError,
	notification: model.NewErrorNotification("Something went wrong", "Please try again later."),
}

// lookupError エラーに対応するマッピングを返す（該当なしは500）
func lookupError(err error) errorMapping {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m
		}
	}
	return internalErrorMapping
}

// respondError エラーをステータスと通知付きのJSONで返し、結果ラベルを返す
func respondError(c *gin.Context, err error) string {
	m := lookupError(err)
	if m.status >= http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(m.status, gin.H{
		"error":        m.code,
		"message":      err.Error(),
		"notification": m.notification,
	})
	return m.outcome
}

// respondBadRequest リクエスト形式の誤り
func respondBadRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   code,
		"message": message,
	})
}
