package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"daily-trivia-service/internal/app"
	"daily-trivia-service/internal/domain"
)

// Handler exposes the four daily-trivia operations over JSON REST.
type Handler struct {
	service *app.TriviaService
}

func NewHandler(service *app.TriviaService) *Handler {
	return &Handler{service: service}
}

// Routes builds the service mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /daily-questions/{username}", h.dailyQuestions)
	mux.HandleFunc("POST /submit-score", h.submitScore)
	mux.HandleFunc("GET /today-score/{username}", h.todayScore)
	mux.HandleFunc("GET /{$}", h.home)
	return mux
}

func (h *Handler) dailyQuestions(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	set, err := h.service.DailyQuestions(r.Context(), username)
	switch {
	case errors.Is(err, domain.ErrAlreadyPlayed):
		writeError(w, http.StatusForbidden, "You have already played today.")
	case errors.Is(err, domain.ErrProviderUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Questions are unavailable right now, try again later.")
	case err != nil:
		serverError(w, "daily questions", err)
	default:
		writeJSON(w, http.StatusOK, set)
	}
}

// submitRequest is the tagged parse of the submission body: a decode error,
// missing username, or non-integer score is InvalidInput before the ledger
// is ever consulted.
type submitRequest struct {
	Username string `json:"username"`
	Score    *int   `json:"score"`
}

func (h *Handler) submitScore(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Score == nil {
		writeError(w, http.StatusBadRequest, "Username and numeric score are required.")
		return
	}

	err := h.service.SubmitScore(r.Context(), req.Username, *req.Score)
	switch {
	case errors.Is(err, domain.ErrAlreadySubmitted):
		writeError(w, http.StatusForbidden, "Already submitted today.")
	case errors.Is(err, domain.ErrInvalidSubmission):
		writeError(w, http.StatusBadRequest, "Username and numeric score are required.")
	case err != nil:
		serverError(w, "submit score", err)
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Score recorded successfully."})
	}
}

func (h *Handler) todayScore(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	score, err := h.service.TodayScore(r.Context(), username)
	if err != nil {
		serverError(w, "today score", err)
		return
	}
	// score is nil when the user never submitted; it serializes as null.
	writeJSON(w, http.StatusOK, map[string]*int{"score": score})
}

func (h *Handler) home(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("Trivia server is running!"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func serverError(w http.ResponseWriter, op string, err error) {
	log.Printf("%s: %v", op, err)
	writeError(w, http.StatusInternalServerError, "Internal server error.")
}
