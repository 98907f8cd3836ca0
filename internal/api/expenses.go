package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/susu3304/tabiplan/internal/db"
	"github.com/susu3304/tabiplan/internal/mapsurl"
)

// The payer list has appeared on the wire under two spellings: "payers"
// (current clients) and "Payers" (the original mobile client). Everything
// past this file sees one canonical value: nil when the field was absent
// or unusable, which the cost engine reads as "everyone pays"; a non-nil
// slice otherwise, empty meaning the user removed every payer.
func normalizePayers(body []byte) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil
	}
	raw, ok := fields["payers"]
	if !ok {
		raw, ok = fields["Payers"]
	}
	if !ok {
		return nil
	}
	var payers []string
	if err := json.Unmarshal(raw, &payers); err != nil {
		return nil
	}
	if payers == nil {
		return nil
	}
	return payers
}

// locationCoords resolves a Google Maps URL to a coordinate pair, hitting
// the network only for short links that carry no coordinates themselves.
func locationCoords(locationURL string) (*float64, *float64) {
	if locationURL == "" {
		return nil, nil
	}
	lat, lng, ok := mapsurl.ExtractCoords(locationURL)
	if !ok {
		var err error
		lat, lng, _, err = mapsurl.ExpandAndExtractCoords(locationURL)
		if err != nil {
			return nil, nil
		}
	}
	return &lat, &lng
}

// Flight handlers
func (a *API) handleListFlights(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	flights, err := a.db.ListFlights(r.Context(), trip.ID)
	if err != nil {
		http.Error(w, "failed to list flights", http.StatusInternalServerError)
		return
	}
	writeJSON(w, flights)
}

type flightRequest struct {
	Airline       string     `json:"airline"`
	FlightNumber  string     `json:"flight_number"`
	DepartAirport string     `json:"depart_airport"`
	ArriveAirport string     `json:"arrive_airport"`
	DepartAt      *time.Time `json:"depart_at"`
	Cost          float64    `json:"cost"`
}

func (a *API) decodeFlight(w http.ResponseWriter, r *http.Request, tripID int64) (*db.Flight, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return nil, false
	}
	var req flightRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return nil, false
	}
	return &db.Flight{
		TripID:        tripID,
		Airline:       req.Airline,
		FlightNumber:  req.FlightNumber,
		DepartAirport: req.DepartAirport,
		ArriveAirport: req.ArriveAirport,
		DepartAt:      req.DepartAt,
		Cost:          req.Cost,
		Payers:        normalizePayers(body),
	}, true
}

func (a *API) handleCreateFlight(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	flight, ok := a.decodeFlight(w, r, trip.ID)
	if !ok {
		return
	}
	id, err := a.db.CreateFlight(r.Context(), flight)
	if err != nil {
		http.Error(w, "failed to create flight", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]int64{"id": id})
}

func (a *API) handleUpdateFlight(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	flight, ok := a.decodeFlight(w, r, trip.ID)
	if !ok {
		return
	}
	flight.ID = id
	if err := a.db.UpdateFlight(r.Context(), flight); err != nil {
		http.Error(w, "flight not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"message": "flight updated"})
}

func (a *API) handleDeleteFlight(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := a.db.DeleteFlight(r.Context(), trip.ID, id); err != nil {
		http.Error(w, "flight not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"message": "flight deleted"})
}

// Lodging handlers
func (a *API) handleListLodgings(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	lodgings, err := a.db.ListLodgings(r.Context(), trip.ID)
	if err != nil {
		http.Error(w, "failed to list lodgings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, lodgings)
}

type lodgingRequest struct {
	Name        string     `json:"name"`
	LocationURL string     `json:"location_url"`
	CheckIn     *time.Time `json:"check_in"`
	CheckOut    *time.Time `json:"check_out"`
	Cost        float64    `json:"cost"`
}

func (a *API) decodeLodging(w http.ResponseWriter, r *http.Request, tripID int64) (*db.Lodging, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return nil, false
	}
	var req lodgingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return nil, false
	}
	lat, lng := locationCoords(req.LocationURL)
	return &db.Lodging{
		TripID:      tripID,
		Name:        req.Name,
		LocationURL: req.LocationURL,
		Lat:         lat,
		Lng:         lng,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Cost:        req.Cost,
		Payers:      normalizePayers(body),
	}, true
}

func (a *API) handleCreateLodging(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	lodging, ok := a.decodeLodging(w, r, trip.ID)
	if !ok {
		return
	}
	id, err := a.db.CreateLodging(r.Context(), lodging)
	if err != nil {
		http.Error(w, "failed to create lodging", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]int64{"id": id})
}

func (a *API) handleUpdateLodging(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	lodging, ok := a.decodeLodging(w, r, trip.ID)
	if !ok {
		return
	}
	lodging.ID = id
	if err := a.db.UpdateLodging(r.Context(), lodging); err != nil {
		http.Error(w, "lodging not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"message": "lodging updated"})
}

func (a *API) handleDeleteLodging(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := a.db.DeleteLodging(r.Context(), trip.ID, id); err != nil {
		http.Error(w, "lodging not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"message": "lodging deleted"})
}

// Tour handlers
func (a *API) handleListTours(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	tours, err := a.db.ListTours(r.Context(), trip.ID)
	if err != nil {
		http.Error(w, "failed to list tours", http.StatusInternalServerError)
		return
	}
	writeJSON(w, tours)
}

type tourRequest struct {
	Name        string     `json:"name"`
	LocationURL string     `json:"location_url"`
	ScheduledOn *time.Time `json:"scheduled_on"`
	Cost        float64    `json:"cost"`
}

func (a *API) decodeTour(w http.ResponseWriter, r *http.Request, tripID int64) (*db.Tour, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return nil, false
	}
	var req tourRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return nil, false
	}
	lat, lng := locationCoords(req.LocationURL)
	return &db.Tour{
		TripID:      tripID,
		Name:        req.Name,
		LocationURL: req.LocationURL,
		Lat:         lat,
		Lng:         lng,
		ScheduledOn: req.ScheduledOn,
		Cost:        req.Cost,
		Payers:      normalizePayers(body),
	}, true
}

func (a *API) handleCreateTour(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	tour, ok := a.decodeTour(w, r, trip.ID)
	if !ok {
		return
	}
	id, err := a.db.CreateTour(r.Context(), tour)
	if err != nil {
		http.Error(w, "failed to create tour", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]int64{"id": id})
}

func (a *API) handleUpdateTour(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	tour, ok := a.decodeTour(w, r, trip.ID)
	if !ok {
		return
	}
	tour.ID = id
	if err := a.db.UpdateTour(r.Context(), tour); err != nil {
		http.Error(w, "tour not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"message": "tour updated"})
}

func (a *API) handleDeleteTour(w http.ResponseWriter, r *http.Request) {
	trip, ok := a.requireTrip(w, r)
	if !ok {
		return
	}
	id, ok := parseID(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := a.db.DeleteTour(r.Context(), trip.ID, id); err != nil {
		http.Error(w, "tour not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"message": "tour deleted"})
}
