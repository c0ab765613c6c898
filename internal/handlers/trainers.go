package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ndiaz/fitlink/internal/middleware"
	"github.com/ndiaz/fitlink/internal/models"
	"github.com/ndiaz/fitlink/internal/store"
)

type TrainerHandler struct {
	Store store.Store
}

type TrainerRequest struct {
	Specialty  string  `json:"specialty" validate:"required"`
	Bio        string  `json:"bio"`
	HourlyRate float64 `json:"hourlyRate" validate:"gte=0"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Register creates a trainer profile for the authenticated user.
func (h *TrainerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req TrainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID := middleware.UserID(r)
	if _, err := h.Store.GetTrainerByUser(userID); err == nil {
		http.Error(w, "Trainer profile already exists", http.StatusConflict)
		return
	}

	trainer := &models.Trainer{
		UserID:     userID,
		Specialty:  req.Specialty,
		Bio:        req.Bio,
		HourlyRate: req.HourlyRate,
	}
	if _, err := h.Store.CreateTrainer(trainer); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, trainer)
}

func (h *TrainerHandler) List(w http.ResponseWriter, r *http.Request) {
	trainers, err := h.Store.ListTrainers(r.URL.Query().Get("specialty"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, trainers)
}

func (h *TrainerHandler) Get(w http.ResponseWriter, r *http.Request) {
	trainer, ok := h.trainerFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, trainer)
}

func (h *TrainerHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	trainer, ok := h.trainerFromPath(w, r)
	if !ok {
		return
	}
	reviews, err := h.Store.GetTrainerReviews(trainer.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *TrainerHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	trainer, ok := h.trainerFromPath(w, r)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID := middleware.UserID(r)
	if trainer.UserID == userID {
		http.Error(w, "Trainers cannot review themselves", http.StatusBadRequest)
		return
	}

	review := &models.TrainerReview{
		TrainerID: trainer.ID,
		AuthorID:  userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if _, err := h.Store.AddTrainerReview(review); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *TrainerHandler) trainerFromPath(w http.ResponseWriter, r *http.Request) (*models.Trainer, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid trainer id", http.StatusBadRequest)
		return nil, false
	}
	trainer, err := h.Store.GetTrainer(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Trainer not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return trainer, true
}
