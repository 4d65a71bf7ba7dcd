package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"EWaste-App/internal/domain/model"
	"EWaste-App/internal/infrastructure/metrics"
	"EWaste-App/internal/usecase"
)

// SuggestionsHandler センター提案フォームのHTTPハンドラー
type SuggestionsHandler struct {
	suggestionUseCase usecase.SuggestionUseCase
}

// NewSuggestionsHandler SuggestionsHandlerの新しいインスタンスを作成
func NewSuggestionsHandler(suggestionUseCase usecase.SuggestionUseCase) *SuggestionsHandler {
	return &SuggestionsHandler{suggestionUseCase: suggestionUseCase}
}

// PostSuggestion POST /api/suggestions
func (h *SuggestionsHandler) PostSuggestion(c *gin.Context) {
	var req model.SuggestCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid_request", "Invalid JSON format: "+err.Error())
		return
	}

	response, err := h.suggestionUseCase.Submit(c.Request.Context(), &req)
	if err != nil {
		metrics.SuggestionSubmissions.WithLabelValues(respondError(c, err)).Inc()
		return
	}
	metrics.SuggestionSubmissions.WithLabelValues(metrics.OutcomeSuccess).Inc()
	c.JSON(http.StatusCreated, response)
}

// ListSuggestions GET /api/suggestions
func (h *SuggestionsHandler) ListSuggestions(c *gin.Context) {
	suggestions, err := h.suggestionUseCase.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}
