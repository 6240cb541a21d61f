package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vocadrill/backend/internal/domain"
	"github.com/vocadrill/backend/internal/service/study"
)

// studyService defines the minimal interface needed by StudyHandler.
type studyService interface {
	ReviewCard(ctx context.Context, input study.ReviewCardInput) (*study.ReviewResult, error)
	AnswerQuiz(ctx context.Context, input study.AnswerQuizInput) (*domain.LeitnerEntry, error)
	BuildSession(ctx context.Context, input study.BuildSessionInput) ([]string, error)
	EnsureEntries(ctx context.Context, input study.EnsureEntriesInput) (*study.EnsureResult, error)
	EvaluateWeights(ctx context.Context, input study.EvaluateWeightsInput) (*study.EvaluationResult, error)
	SaveWeights(ctx context.Context, weights []float64) error
	GetDashboard(ctx context.Context, deck string) (domain.Dashboard, error)
}

// StudyHandler serves the study REST endpoints.
type StudyHandler struct {
	svc studyService
	log *slog.Logger
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(svc studyService, logger *slog.Logger) *StudyHandler {
	return &StudyHandler{svc: svc, log: logger.With("handler", "study")}
}

type reviewRequest struct {
	Deck    string `json:"deck"`
	VocabID string `json:"vocabId"`
	Rating  string `json:"rating"`
}

type srsEntryResponse struct {
	Deck             string  `json:"deck"`
	VocabID          string  `json:"vocabId"`
	Stability        float64 `json:"stability"`
	Difficulty       float64 `json:"difficulty"`
	State            string  `json:"state"`
	NextIntervalDays int     `json:"nextIntervalDays"`
	DueAt            string  `json:"dueAt"`
	LastReviewedAt   string  `json:"lastReviewedAt,omitempty"`
	Retrievability   float64 `json:"retrievability"`
}

// Review handles POST /api/study/review.
func (h *StudyHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.ReviewCard(r.Context(), study.ReviewCardInput{
		Deck:    req.Deck,
		VocabID: req.VocabID,
		Rating:  domain.Rating(req.Rating),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSRSEntryResponse(result))
}

type quizRequest struct {
	Deck    string `json:"deck"`
	VocabID string `json:"vocabId"`
	Correct bool   `json:"correct"`
}

type leitnerEntryResponse struct {
	Deck    string `json:"deck"`
	VocabID string `json:"vocabId"`
	Box     int    `json:"box"`
	DueAt   string `json:"dueAt"`
}

// Quiz handles POST /api/study/quiz.
func (h *StudyHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.svc.AnswerQuiz(r.Context(), study.AnswerQuizInput{
		Deck:    req.Deck,
		VocabID: req.VocabID,
		Correct: req.Correct,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, leitnerEntryResponse{
		Deck:    entry.Deck,
		VocabID: entry.VocabID,
		Box:     entry.Box,
		DueAt:   domain.FormatTimestamp(entry.DueAt),
	})
}

// Session handles GET /api/study/session?deck=core&size=20.
func (h *StudyHandler) Session(w http.ResponseWriter, r *http.Request) {
	size := 20
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "size must be an integer")
			return
		}
		size = n
	}

	queue, err := h.svc.BuildSession(r.Context(), study.BuildSessionInput{
		Deck:        r.URL.Query().Get("deck"),
		SessionSize: size,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if queue == nil {
		queue = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"queue": queue})
}

type ensureRequest struct {
	Deck     string   `json:"deck"`
	VocabIDs []string `json:"vocabIds"`
}

// Ensure handles POST /api/study/entries. It seeds missing scheduling
// entries for a deck's cards on both tracks.
func (h *StudyHandler) Ensure(w http.ResponseWriter, r *http.Request) {
	var req ensureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.EnsureEntries(r.Context(), study.EnsureEntriesInput{
		Deck:     req.Deck,
		VocabIDs: req.VocabIDs,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"createdSrs":     result.CreatedSRS,
		"createdLeitner": result.CreatedLeitner,
	})
}

type weightsRequest struct {
	Weights []float64 `json:"weights"`
}

// EvaluateWeights handles POST /api/study/weights/evaluate. An empty vector
// scores the stored (or default) weights.
func (h *StudyHandler) EvaluateWeights(w http.ResponseWriter, r *http.Request) {
	var req weightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.EvaluateWeights(r.Context(), study.EvaluateWeightsInput{
		Weights: req.Weights,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"loss":     result.Loss,
		"logCount": result.LogCount,
		"weights":  result.Weights[:],
	})
}

// SaveWeights handles PUT /api/study/weights.
func (h *StudyHandler) SaveWeights(w http.ResponseWriter, r *http.Request) {
	var req weightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SaveWeights(r.Context(), req.Weights); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Dashboard handles GET /api/study/dashboard?deck=core.
func (h *StudyHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.GetDashboard(r.Context(), r.URL.Query().Get("deck"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"dueCount":      dash.DueCount,
		"newCount":      dash.NewCount,
		"reviewedTotal": dash.ReviewedTotal,
		"boxes": map[string]int{
			"box1":  dash.Boxes.Box1,
			"box2":  dash.Boxes.Box2,
			"box3":  dash.Boxes.Box3,
			"total": dash.Boxes.Total,
		},
	})
}

func (h *StudyHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toSRSEntryResponse(result *study.ReviewResult) srsEntryResponse {
	e := result.Entry
	resp := srsEntryResponse{
		Deck:             e.Deck,
		VocabID:          e.VocabID,
		Stability:        e.State.Stability,
		Difficulty:       e.State.Difficulty,
		State:            e.State.State.String(),
		NextIntervalDays: e.NextIntervalDays,
		DueAt:            domain.FormatTimestamp(e.DueAt),
		Retrievability:   result.Retrievability,
	}
	if e.State.LastReviewedAt != nil {
		resp.LastReviewedAt = domain.FormatTimestamp(*e.State.LastReviewedAt)
	}
	return resp
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
