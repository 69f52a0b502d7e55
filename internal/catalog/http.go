package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandlers exposes the catalog endpoints.
type HTTPHandlers struct {
	engine *Engine
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for catalog endpoints.
func NewHTTPHandlers(engine *Engine, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		engine: engine,
		logger: logger.With().Str("component", "catalog_http").Logger(),
	}
}

// questionRequest is the POST /questions body: a search when searchTerm is present,
// otherwise a question to create.
type questionRequest struct {
	SearchTerm *string  `json:"searchTerm"`
	Question   *string  `json:"question"`
	Answer     *string  `json:"answer"`
	Difficulty *FlexInt `json:"difficulty"`
	Category   *FlexInt `json:"category"`
}

// FlexInt accepts both 3 and "3"; browser forms often send select values as strings.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// Categories handles GET /categories
func (h *HTTPHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	categories, err := h.engine.ListCategories(r.Context())
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

// Questions handles GET /questions?page=N and POST /questions (search or create).
func (h *HTTPHandlers) Questions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listQuestions(w, r)
	case http.MethodPost:
		h.postQuestion(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

func (h *HTTPHandlers) listQuestions(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	result, err := h.engine.ListQuestions(r.Context(), page)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       result.Questions,
		"totalQuestions":  result.TotalQuestions,
		"categories":      result.Categories,
		"currentCategory": result.CurrentCategory,
	})
}

func (h *HTTPHandlers) postQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		var numErr *strconv.NumError
		if errors.As(err, &typeErr) || errors.As(err, &numErr) {
			// Well-formed JSON with unusable field values.
			httperrors.RespondUnprocessable(w)
			return
		}
		httperrors.RespondBadRequest(w)
		return
	}

	if req.SearchTerm != nil {
		h.searchQuestions(w, r, *req.SearchTerm)
		return
	}

	if req.Question == nil || req.Answer == nil || req.Difficulty == nil || req.Category == nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	created, err := h.engine.CreateQuestion(r.Context(), NewQuestion{
		Question:   *req.Question,
		Answer:     *req.Answer,
		Difficulty: int(*req.Difficulty),
		Category:   int64(*req.Category),
	})
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"created": created.ID,
	})
}

func (h *HTTPHandlers) searchQuestions(w http.ResponseWriter, r *http.Request, term string) {
	result, err := h.engine.SearchQuestions(r.Context(), term)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       result.Questions,
		"totalQuestions":  result.TotalQuestions,
		"currentCategory": result.CurrentCategory,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	if err := h.engine.DeleteQuestion(r.Context(), id); err != nil {
		h.respondFailure(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": id,
	})
}

// CategoryQuestions handles GET /categories/{id}/questions
func (h *HTTPHandlers) CategoryQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httperrors.RespondBadRequest(w)
		return
	}

	result, err := h.engine.ListQuestionsByCategory(r.Context(), id)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       result.Questions,
		"totalQuestions":  result.TotalQuestions,
		"currentCategory": result.CurrentCategory,
	})
}

func (h *HTTPHandlers) respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	logger := logging.FromContextOr(r.Context(), h.logger)
	logger.Warn().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("catalog request failed")
	httperrors.RespondError(w, status)
}

// HTTPStatus maps an engine or selector failure to its transport status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
