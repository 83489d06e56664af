package performancehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrledger/internal/domain/performance"
	"hrledger/internal/transport/http/api"
	"hrledger/internal/transport/http/middleware"
	"hrledger/internal/transport/http/shared"
)

type Handler struct {
	Service *performance.Service
}

func NewHandler(service *performance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.Get("/reviews", h.handleListReviews)
		r.Post("/reviews", h.handleCreateReview)
		r.Get("/employees/{employeeID}/average", h.handleAverage)
		r.Get("/leaderboard", h.handleLeaderboard)
		r.Get("/summary", h.handleSummary)
	})
}

func (h *Handler) handleListReviews(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	validator := shared.NewValidator()
	employeeID := shared.QueryInt(validator, r, "employeeId")
	if validator.Reject(w, requestID) {
		return
	}

	reviews, err := h.Service.ListReviews(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, reviews, requestID)
}

type reviewPayload struct {
	EmployeeID int    `json:"employeeId"`
	Rating     int    `json:"rating"`
	Feedback   string `json:"feedback"`
}

func (h *Handler) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload reviewPayload
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	review, err := h.Service.AddReview(r.Context(), payload.EmployeeID, payload.Rating, payload.Feedback)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Created(w, review, requestID)
}

func (h *Handler) handleAverage(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	avg, err := h.Service.AverageRating(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, map[string]any{"employeeId": employeeID, "averageRating": avg}, requestID)
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	standings, err := h.Service.Leaderboard(r.Context())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, standings, requestID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, summary, requestID)
}
