package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/bhaviksharmawork/Quizzer/internal/app"
	"github.com/bhaviksharmawork/Quizzer/internal/domain"
)

// APIHandler serves the synchronous quiz discovery endpoint.
type APIHandler struct {
	store app.QuizStore
}

func NewAPIHandler(store app.QuizStore) *APIHandler {
	return &APIHandler{store: store}
}

type quizzesResponse struct {
	Quizzes []domain.Quiz `json:"quizzes"`
}

// ListQuizzes handles GET /api/quizzes: a full dump of the quiz store.
func (h *APIHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	quizzes, err := h.store.GetAll(r.Context())
	if err != nil {
		log.Printf("list quizzes: %v", err)
		http.Error(w, "quiz store unavailable", http.StatusServiceUnavailable)
		return
	}
	if quizzes == nil {
		quizzes = []domain.Quiz{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(quizzesResponse{Quizzes: quizzes}); err != nil {
		log.Printf("encode quizzes: %v", err)
	}
}
