package quiz

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandler serves POST /quizzes.
type HTTPHandler struct {
	selector *Selector
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewHTTPHandler constructs the quiz handler. m may be nil.
func NewHTTPHandler(selector *Selector, m *metrics.Metrics, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		selector: selector,
		metrics:  m,
		logger:   logger.With().Str("component", "quiz_http").Logger(),
	}
}

type quizRequest struct {
	PreviousQuestions []catalog.FlexInt `json:"previous_questions"`
	QuizCategory      *struct {
		ID   catalog.FlexInt `json:"id"`
		Type string          `json:"type"`
	} `json:"quiz_category"`
}

// NextQuestion handles POST /quizzes
func (h *HTTPHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuizCategory == nil {
		httperrors.RespondBadRequest(w)
		return
	}

	seen := make(SeenSet, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		seen[int64(id)] = struct{}{}
	}

	category := int64(req.QuizCategory.ID)
	question, err := h.selector.Next(r.Context(), category, seen)
	if err != nil {
		h.metrics.ObserveQuizSelection(metrics.OutcomeFailed)
		status := catalog.HTTPStatus(err)
		logger := logging.FromContextOr(r.Context(), h.logger)
		logger.Warn().
			Err(err).
			Int64("category", category).
			Int("status", status).
			Msg("quiz selection failed")
		httperrors.RespondError(w, status)
		return
	}

	if question == nil {
		h.metrics.ObserveQuizSelection(metrics.OutcomeExhausted)
	} else {
		h.metrics.ObserveQuizSelection(metrics.OutcomeServed)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"question": question,
	})
}
