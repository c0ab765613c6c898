package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/samber/lo"

	"github.com/ndiaz/fitlink/internal/middleware"
	"github.com/ndiaz/fitlink/internal/models"
	"github.com/ndiaz/fitlink/internal/store"
)

type GroupHandler struct {
	Store store.Store
}

type GroupRequest struct {
	Name      string  `json:"name" validate:"required"`
	Sport     string  `json:"sport"`
	Activity  string  `json:"activity"`
	Location  string  `json:"location" validate:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID := middleware.UserID(r)
	group := &models.Group{
		Name:        req.Name,
		Sport:       req.Sport,
		Activity:    req.Activity,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OrganizerID: userID,
	}

	if _, err := h.Store.CreateGroup(group); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// The organizer is a member from the start.
	if err := h.Store.AddGroupMember(group.ID, userID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, group)
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Store.GetAllGroups()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		writeJSON(w, http.StatusOK, []models.Group{})
		return
	}

	groups, err := h.Store.SearchGroups(term)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		http.Error(w, "lat and lng are required", http.StatusBadRequest)
		return
	}
	maxDistance := 5000.0
	if d, err := strconv.ParseFloat(r.URL.Query().Get("distance"), 64); err == nil && d > 0 {
		maxDistance = d
	}

	groups, err := h.Store.GetAllGroups()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	nearby := lo.Filter(groups, func(g models.Group, _ int) bool {
		return haversineMeters(lat, lng, g.Latitude, g.Longitude) <= maxDistance
	})
	writeJSON(w, http.StatusOK, nearby)
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	group, ok := h.groupFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	group, ok := h.groupFromPath(w, r)
	if !ok {
		return
	}
	if group.OrganizerID != middleware.UserID(r) {
		http.Error(w, "Only the organizer can update the group", http.StatusForbidden)
		return
	}

	var req GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	group.Name = req.Name
	group.Sport = req.Sport
	group.Activity = req.Activity
	group.Location = req.Location
	group.Latitude = req.Latitude
	group.Longitude = req.Longitude

	if err := h.Store.UpdateGroup(group); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	group, ok := h.groupFromPath(w, r)
	if !ok {
		return
	}
	if group.OrganizerID != middleware.UserID(r) {
		http.Error(w, "Only the organizer can delete the group", http.StatusForbidden)
		return
	}

	if err := h.Store.DeleteGroup(group.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	group, ok := h.groupFromPath(w, r)
	if !ok {
		return
	}
	if err := h.Store.AddGroupMember(group.ID, middleware.UserID(r)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *GroupHandler) Leave(w http.ResponseWriter, r *http.Request) {
	group, ok := h.groupFromPath(w, r)
	if !ok {
		return
	}
	if err := h.Store.RemoveGroupMember(group.ID, middleware.UserID(r)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	group, ok := h.groupFromPath(w, r)
	if !ok {
		return
	}
	if group.OrganizerID != middleware.UserID(r) {
		http.Error(w, "Only the organizer can remove members", http.StatusForbidden)
		return
	}

	memberID, err := pathID(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if err := h.Store.RemoveGroupMember(group.ID, memberID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) Members(w http.ResponseWriter, r *http.Request) {
	group, ok := h.groupFromPath(w, r)
	if !ok {
		return
	}
	members, err := h.Store.GetGroupMembers(group.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// Messages returns the persisted message history of a group. Members only.
func (h *GroupHandler) Messages(w http.ResponseWriter, r *http.Request) {
	group, ok := h.groupFromPath(w, r)
	if !ok {
		return
	}

	isMember, err := h.Store.IsGroupMember(group.ID, middleware.UserID(r))
	if err != nil || !isMember {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	messages, err := h.Store.GetGroupMessages(group.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *GroupHandler) ByMember(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	groups, err := h.Store.GetGroupsByMember(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) groupFromPath(w http.ResponseWriter, r *http.Request) (*models.Group, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid group id", http.StatusBadRequest)
		return nil, false
	}
	group, err := h.Store.GetGroup(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Group not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return group, true
}

const earthRadiusMeters = 6371000

func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
