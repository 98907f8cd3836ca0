package api

import (
	"net/http"

	"github.com/susu3304/tabiplan/internal/report"
)

func (a *API) handleTripCosts(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}

	members, err := a.db.ListMembers(r.Context(), trip.GroupID)
	if err != nil {
		http.Error(w, "failed to list members", http.StatusInternalServerError)
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

	writeJSON(w, report.Build(members, flights, lodgings, tours))
}
