package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ndiaz/fitlink/internal/middleware"
	"github.com/ndiaz/fitlink/internal/models"
	"github.com/ndiaz/fitlink/internal/store"
)

type WorkoutHandler struct {
	Store store.Store
}

type WorkoutRequest struct {
	Name            string     `json:"name" validate:"required"`
	Type            string     `json:"type" validate:"required"`
	DurationMinutes int        `json:"durationMinutes" validate:"gte=0"`
	Intensity       string     `json:"intensity"`
	Notes           string     `json:"notes"`
	PerformedAt     *time.Time `json:"performedAt"`
}

func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	performedAt := time.Now().UTC()
	if req.PerformedAt != nil {
		performedAt = *req.PerformedAt
	}

	workout := &models.Workout{
		CreatorID:       middleware.UserID(r),
		Name:            req.Name,
		Type:            req.Type,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		Notes:           req.Notes,
		PerformedAt:     performedAt,
	}
	if _, err := h.Store.CreateWorkout(workout); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.WorkoutFilter{Type: r.URL.Query().Get("type")}
	if creator := r.URL.Query().Get("creator"); creator != "" {
		id, err := strconv.ParseInt(creator, 10, 64)
		if err != nil {
			http.Error(w, "invalid creator id", http.StatusBadRequest)
			return
		}
		filter.CreatorID = id
	}

	workouts, err := h.Store.ListWorkouts(filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (h *WorkoutHandler) My(w http.ResponseWriter, r *http.Request) {
	workouts, err := h.Store.ListWorkouts(store.WorkoutFilter{CreatorID: middleware.UserID(r)})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (h *WorkoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	workout, ok := h.workoutFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	workout, ok := h.workoutFromPath(w, r)
	if !ok {
		return
	}
	if workout.CreatorID != middleware.UserID(r) {
		http.Error(w, "Only the creator can update the workout", http.StatusForbidden)
		return
	}

	var req WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout.Name = req.Name
	workout.Type = req.Type
	workout.DurationMinutes = req.DurationMinutes
	workout.Intensity = req.Intensity
	workout.Notes = req.Notes
	if req.PerformedAt != nil {
		workout.PerformedAt = *req.PerformedAt
	}

	if err := h.Store.UpdateWorkout(workout); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	workout, ok := h.workoutFromPath(w, r)
	if !ok {
		return
	}
	if workout.CreatorID != middleware.UserID(r) {
		http.Error(w, "Only the creator can delete the workout", http.StatusForbidden)
		return
	}

	if err := h.Store.DeleteWorkout(workout.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkoutHandler) workoutFromPath(w http.ResponseWriter, r *http.Request) (*models.Workout, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid workout id", http.StatusBadRequest)
		return nil, false
	}
	workout, err := h.Store.GetWorkout(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Workout not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return workout, true
}
