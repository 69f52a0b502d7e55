package catalog_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	"github.com/gokatarajesh/trivia-api/internal/catalog/catalogtest"
)

// seedStore builds categories {1: Science, 2: Art} with n questions alternating between them.
func seedStore(n int) *catalogtest.MemoryStore {
	store := catalogtest.NewMemoryStore()
	store.AddCategory(1, "Science")
	store.AddCategory(2, "Art")
	for i := 1; i <= n; i++ {
		store.AddQuestion(fmt.Sprintf("Question %d?", i), "A", 2, int64(2-i%2))
	}
	return store
}

func newTestMux(t *testing.T, store *catalogtest.MemoryStore) *http.ServeMux {
	t.Helper()
	engine := catalog.NewEngine(store, nil, catalog.Options{}, zerolog.New(io.Discard))
	h := catalog.NewHTTPHandlers(engine, zerolog.New(io.Discard))

	mux := http.NewServeMux()
	mux.HandleFunc("/categories", h.Categories)
	mux.HandleFunc("/questions", h.Questions)
	mux.HandleFunc("/questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("/categories/{id}/questions", h.CategoryQuestions)
	return mux
}

func do(t *testing.T, mux http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	return rec, payload
}

func TestCategoriesHandler(t *testing.T) {
	mux := newTestMux(t, seedStore(3))

	rec, body := do(t, mux, http.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	categories := body["categories"].(map[string]interface{})
	assert.Equal(t, "Science", categories["1"])
	assert.Equal(t, "Art", categories["2"])
}

func TestCategoriesHandlerEmpty(t *testing.T) {
	mux := newTestMux(t, catalogtest.NewMemoryStore())

	rec, body := do(t, mux, http.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(404), body["error"])
	assert.Equal(t, "resource not found", body["message"])
}

func TestCategoriesHandlerMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t, seedStore(1))

	rec, body := do(t, mux, http.MethodPost, "/categories", "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, float64(405), body["error"])
}

func TestQuestionsHandlerPaging(t *testing.T) {
	mux := newTestMux(t, seedStore(12))

	rec, body := do(t, mux, http.MethodGet, "/questions?page=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["questions"], 2)
	assert.Equal(t, float64(12), body["totalQuestions"])
	assert.Equal(t, "ALL", body["currentCategory"])
	assert.NotEmpty(t, body["categories"])
}

func TestQuestionsHandlerNonNumericPageDefaultsToFirst(t *testing.T) {
	mux := newTestMux(t, seedStore(12))

	rec, body := do(t, mux, http.MethodGet, "/questions?page=abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	questions := body["questions"].([]interface{})
	require.Len(t, questions, 10)
	assert.Equal(t, float64(1), questions[0].(map[string]interface{})["id"])
}

func TestQuestionsHandlerPageOutOfRange(t *testing.T) {
	mux := newTestMux(t, seedStore(3))

	rec, _ := do(t, mux, http.MethodGet, "/questions?page=9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, mux, http.MethodGet, "/questions?page=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, mux, http.MethodGet, "/questions?page=1000000000000000000", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuestionsHandlerSearch(t *testing.T) {
	store := seedStore(0)
	store.AddQuestion("What is the title of the 1990 fantasy directed by Tim Burton?", "Edward Scissorhands", 3, 1)
	store.AddQuestion("Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", "Maya Angelou", 2, 2)
	mux := newTestMux(t, store)

	// totalQuestions counts the whole collection, not the matches.
	rec, body := do(t, mux, http.MethodPost, "/questions", `{"searchTerm":"Tim Burton"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	questions := body["questions"].([]interface{})
	require.Len(t, questions, 1)
	assert.Equal(t, float64(1), questions[0].(map[string]interface{})["id"])
	assert.Equal(t, float64(2), body["totalQuestions"])
	assert.Equal(t, "ALL", body["currentCategory"])

	rec, body = do(t, mux, http.MethodPost, "/questions", `{"searchTerm":"zzz"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["questions"])
	assert.Equal(t, float64(2), body["totalQuestions"])
}

func TestQuestionsHandlerCreate(t *testing.T) {
	store := seedStore(0)
	mux := newTestMux(t, store)

	rec, body := do(t, mux, http.MethodPost, "/questions",
		`{"question":"What is 2+2?","answer":"4","difficulty":1,"category":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["created"])

	q, err := store.QuestionByID(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), q.Category)
}

func TestQuestionsHandlerCreateRejected(t *testing.T) {
	cases := map[string]struct {
		body   string
		status int
	}{
		"missing answer":     {`{"question":"Q","difficulty":1,"category":1}`, http.StatusUnprocessableEntity},
		"empty question":     {`{"question":"","answer":"A","difficulty":1,"category":1}`, http.StatusUnprocessableEntity},
		"difficulty too big": {`{"question":"Q","answer":"A","difficulty":9,"category":1}`, http.StatusUnprocessableEntity},
		"unknown category":   {`{"question":"Q","answer":"A","difficulty":1,"category":99}`, http.StatusUnprocessableEntity},
		"wrong type":         {`{"question":7,"answer":"A","difficulty":1,"category":1}`, http.StatusUnprocessableEntity},
		"bad numeric string": {`{"question":"Q","answer":"A","difficulty":"hard","category":1}`, http.StatusUnprocessableEntity},
		"malformed json":     {`{"question":`, http.StatusBadRequest},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			mux := newTestMux(t, seedStore(0))
			rec, body := do(t, mux, http.MethodPost, "/questions", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, float64(tc.status), body["error"])
		})
	}
}

func TestDeleteQuestionHandler(t *testing.T) {
	store := seedStore(2)
	mux := newTestMux(t, store)

	rec, body := do(t, mux, http.MethodDelete, "/questions/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["deleted"])

	rec, _ = do(t, mux, http.MethodDelete, "/questions/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, mux, http.MethodDelete, "/questions/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, mux, http.MethodGet, "/questions/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDeleteQuestionHandlerStillPresent(t *testing.T) {
	store := seedStore(1)
	store.KeepOnDelete = true
	mux := newTestMux(t, store)

	rec, body := do(t, mux, http.MethodDelete, "/questions/1", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "unprocessable", body["message"])
}

func TestCategoryQuestionsHandler(t *testing.T) {
	mux := newTestMux(t, seedStore(4))

	rec, body := do(t, mux, http.MethodGet, "/categories/2/questions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Art", body["currentCategory"])
	for _, raw := range body["questions"].([]interface{}) {
		assert.Equal(t, float64(2), raw.(map[string]interface{})["category"])
	}

	rec, _ = do(t, mux, http.MethodGet, "/categories/42/questions", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, mux, http.MethodGet, "/categories/abc/questions", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryQuestionsHandlerEmptyCategory(t *testing.T) {
	store := seedStore(2)
	store.AddCategory(3, "Geography")
	mux := newTestMux(t, store)

	rec, _ := do(t, mux, http.MethodGet, "/categories/3/questions", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, catalog.HTTPStatus(catalog.NewError("op", catalog.KindNotFound, nil)))
	assert.Equal(t, http.StatusUnprocessableEntity, catalog.HTTPStatus(catalog.NewError("op", catalog.KindUnprocessable, nil)))
	assert.Equal(t, http.StatusBadRequest, catalog.HTTPStatus(catalog.NewError("op", catalog.KindBadRequest, nil)))
	assert.Equal(t, http.StatusInternalServerError, catalog.HTTPStatus(errors.New("boom")))
}
