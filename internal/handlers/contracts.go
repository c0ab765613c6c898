package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ndiaz/fitlink/internal/middleware"
	"github.com/ndiaz/fitlink/internal/models"
	"github.com/ndiaz/fitlink/internal/store"
	"github.com/ndiaz/fitlink/internal/ws"
)

type ContractHandler struct {
	Store   store.Store
	Gateway *ws.Gateway
}

type HireRequest struct {
	TrainerID int64     `json:"trainerId" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined completed cancelled"`
}

// validTransitions maps a current status to the statuses it may move to.
var validTransitions = map[string][]string{
	models.ContractPending:  {models.ContractAccepted, models.ContractDeclined},
	models.ContractAccepted: {models.ContractCompleted, models.ContractCancelled},
}

func (h *ContractHandler) Hire(w http.ResponseWriter, r *http.Request) {
	var req HireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !req.EndDate.After(req.StartDate) {
		http.Error(w, "endDate must be after startDate", http.StatusBadRequest)
		return
	}

	trainer, err := h.Store.GetTrainer(req.TrainerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Trainer not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	userID := middleware.UserID(r)
	if trainer.UserID == userID {
		http.Error(w, "You cannot hire yourself", http.StatusBadRequest)
		return
	}

	contract := &models.Contract{
		TrainerID: trainer.ID,
		ClientID:  userID,
		Status:    models.ContractPending,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if _, err := h.Store.CreateContract(contract); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.Gateway != nil {
		h.Gateway.NotifyUser(trainer.UserID, "contract-offer", contract)
	}
	writeJSON(w, http.StatusCreated, contract)
}

func (h *ContractHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid contract id", http.StatusBadRequest)
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	contract, err := h.Store.GetContract(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Contract not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	trainer, err := h.Store.GetTrainer(contract.TrainerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	userID := middleware.UserID(r)
	isTrainer := trainer.UserID == userID
	isClient := contract.ClientID == userID
	if !isTrainer && !isClient {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	// Only the trainer responds to a pending offer.
	if contract.Status == models.ContractPending && !isTrainer {
		http.Error(w, "Only the trainer can respond to a pending contract", http.StatusForbidden)
		return
	}

	allowed := false
	for _, next := range validTransitions[contract.Status] {
		if next == req.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		http.Error(w, "Invalid status transition", http.StatusConflict)
		return
	}

	if err := h.Store.UpdateContractStatus(contract.ID, req.Status); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	contract.Status = req.Status

	if h.Gateway != nil {
		// Tell the other party.
		target := contract.ClientID
		if isClient {
			target = trainer.UserID
		}
		h.Gateway.NotifyUser(target, "contract-status", contract)
	}
	writeJSON(w, http.StatusOK, contract)
}

func (h *ContractHandler) My(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Store.GetContractsByUser(middleware.UserID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, contracts)
}
