package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/susu3304/tabiplan/internal/db"
)

func parseID(r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[key], 10, 64)
	return id, err == nil
}

// requireGroupAccess checks the caller belongs to the group. Writes the
// error response itself and reports whether the handler may continue.
func (a *API) requireGroupAccess(w http.ResponseWriter, r *http.Request, groupID int64) bool {
	claims := claimsFrom(r)
	ok, err := a.db.IsMember(r.Context(), groupID, claims.UserID)
	if err != nil {
		http.Error(w, "failed to check membership", http.StatusInternalServerError)
		return false
	}
	if !ok {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

// requireTrip loads the trip and checks the caller belongs to its group.
func (a *API) requireTrip(w http.ResponseWriter, r *http.Request) (*db.Trip, bool) {
	tripID, ok := parseID(r, "trip_id")
	if !ok {
		http.Error(w, "invalid trip_id", http.StatusBadRequest)
		return nil, false
	}
	trip, err := a.db.GetTrip(r.Context(), tripID)
	if err != nil {
		http.Error(w, "trip not found", http.StatusNotFound)
		return nil, false
	}
	if !a.requireGroupAccess(w, r, trip.GroupID) {
		return nil, false
	}
	return trip, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// Group handlers
func (a *API) handleUserGroups(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	groups, err := a.db.GroupsForUser(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "failed to list groups", http.StatusInternalServerError)
		return
	}
	writeJSON(w, groups)
}

func (a *API) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	var req struct {
		Name           string `json:"name"`
		DiscordGuildID *int64 `json:"discord_guild_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	groupID, err := a.db.CreateGroup(r.Context(), req.Name, req.DiscordGuildID)
	if err != nil {
		http.Error(w, "failed to create group", http.StatusInternalServerError)
		return
	}
	// The creator is the first member
	if err := a.db.AddMember(r.Context(), groupID, claims.UserID, claims.Username, false); err != nil {
		http.Error(w, "failed to add creator", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]int64{"id": groupID})
}

func (a *API) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := parseID(r, "group_id")
	if !ok {
		http.Error(w, "invalid group_id", http.StatusBadRequest)
		return
	}
	if !a.requireGroupAccess(w, r, groupID) {
		return
	}
	group, err := a.db.GetGroup(r.Context(), groupID)
	if err != nil {
		http.Error(w, "group not found", http.StatusNotFound)
		return
	}
	writeJSON(w, group)
}

func (a *API) handleListMembers(w http.ResponseWriter, r *http.Request) {
	groupID, ok := parseID(r, "group_id")
	if !ok {
		http.Error(w, "invalid group_id", http.StatusBadRequest)
		return
	}
	if !a.requireGroupAccess(w, r, groupID) {
		return
	}
	members, err := a.db.ListMembers(r.Context(), groupID)
	if err != nil {
		http.Error(w, "failed to list members", http.StatusInternalServerError)
		return
	}
	writeJSON(w, members)
}

func (a *API) handleAddMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := parseID(r, "group_id")
	if !ok {
		http.Error(w, "invalid group_id", http.StatusBadRequest)
		return
	}
	if !a.requireGroupAccess(w, r, groupID) {
		return
	}

	var req struct {
		UserID      string `json:"user_id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := a.db.AddMember(r.Context(), groupID, req.UserID, req.DisplayName, req.IsGuest); err != nil {
		http.Error(w, "failed to add member", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "member added"})
}

func (a *API) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := parseID(r, "group_id")
	if !ok {
		http.Error(w, "invalid group_id", http.StatusBadRequest)
		return
	}
	if !a.requireGroupAccess(w, r, groupID) {
		return
	}

	userID := mux.Vars(r)["user_id"]
	if err := a.db.RemoveMember(r.Context(), groupID, userID); err != nil {
		http.Error(w, "member not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"message": "member removed"})
}

// Invite handlers
func (a *API) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	groupID, ok := parseID(r, "group_id")
	if !ok {
		http.Error(w, "invalid group_id", http.StatusBadRequest)
		return
	}
	if !a.requireGroupAccess(w, r, groupID) {
		return
	}

	code := generateRandomString(20)
	expiresAt := time.Now().Add(7 * 24 * time.Hour)
	if err := a.db.CreateInvite(r.Context(), code, groupID, claims.UserID, expiresAt); err != nil {
		http.Error(w, "failed to create invite", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"code":       code,
		"expires_at": expiresAt,
	})
}

func (a *API) handleAcceptInvite(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	code := mux.Vars(r)["code"]

	invite, err := a.db.GetInvite(r.Context(), code)
	if err != nil {
		http.Error(w, "invite not found", http.StatusNotFound)
		return
	}
	if time.Now().After(invite.ExpiresAt) {
		// Expired codes are cleaned up on first touch
		_ = a.db.DeleteInvite(context.Background(), code)
		http.Error(w, "invite expired", http.StatusGone)
		return
	}

	if err := a.db.AddMember(r.Context(), invite.GroupID, claims.UserID, claims.Username, false); err != nil {
		http.Error(w, "failed to join group", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]int64{"group_id": invite.GroupID})
}

// Trip handlers
func (a *API) handleListTrips(w http.ResponseWriter, r *http.Request) {
	groupID, ok := parseID(r, "group_id")
	if !ok {
		http.Error(w, "invalid group_id", http.StatusBadRequest)
		return
	}
	if !a.requireGroupAccess(w, r, groupID) {
		return
	}
	trips, err := a.db.ListTrips(r.Context(), groupID)
	if err != nil {
		http.Error(w, "failed to list trips", http.StatusInternalServerError)
		return
	}
	writeJSON(w, trips)
}

type tripRequest struct {
	Name        string     `json:"name"`
	Destination string     `json:"destination"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Notes       string     `json:"notes"`
}

func (a *API) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	groupID, ok := parseID(r, "group_id")
	if !ok {
		http.Error(w, "invalid group_id", http.StatusBadRequest)
		return
	}
	if !a.requireGroupAccess(w, r, groupID) {
		return
	}

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, err := a.db.CreateTrip(r.Context(), &db.Trip{
		GroupID:     groupID,
		Name:        req.Name,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Notes:       req.Notes,
	})
	if err != nil {
		http.Error(w, "failed to create trip", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]int64{"id": id})
}

func (a *API) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	writeJSON(w, trip)
}

func (a *API) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	trip.Name = req.Name
	trip.Destination = req.Destination
	trip.StartDate = req.StartDate
	trip.EndDate = req.EndDate
	trip.Notes = req.Notes
	if err := a.db.UpdateTrip(r.Context(), trip); err != nil {
		http.Error(w, "failed to update trip", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "trip updated"})
}

func (a *API) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	if err := a.db.DeleteTrip(r.Context(), trip.ID); err != nil {
		http.Error(w, "failed to delete trip", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "trip deleted"})
}

func (a *API) handleLinkChannel(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}

	var req struct {
		ChannelID string `json:"channel_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChannelID == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := a.db.LinkTripChannel(r.Context(), trip.ID, req.ChannelID); err != nil {
		http.Error(w, "failed to link channel", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "channel linked"})
}

func (a *API) handleGenerateItinerary(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	if a.itineraries == nil {
		http.Error(w, "itinerary generation is not configured", http.StatusServiceUnavailable)
		return
	}

	flights, err := a.db.ListFlights(r.Context(), trip.ID)
	if err != nil {
		http.Error(w, "failed to list flights", http.StatusInternalServerError)
		return
	}
	lodgings, err := a.db.ListLodgings(r.Context(), trip.ID)
	if err != nil {
		http.Error(w, "failed to list lodgings", http.StatusInternalServerError)
		return
	}
	tours, err := a.db.ListTours(r.Context(), trip.ID)
	if err != nil {
		http.Error(w, "failed to list tours", http.StatusInternalServerError)
		return
	}

	text, err := a.itineraries.Generate(r.Context(), trip, flights, lodgings, tours)
	if err != nil {
		http.Error(w, "failed to generate itinerary", http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]string{"itinerary": text})
}
