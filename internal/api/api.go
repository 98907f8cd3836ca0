package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/susu3304/tabiplan/internal/config"
	"github.com/susu3304/tabiplan/internal/db"
	"github.com/susu3304/tabiplan/internal/itinerary"
	"golang.org/x/oauth2"
)

type API struct {
	router      *mux.Router
	db          *db.DB
	config      *config.Config
	oauthConfig *oauth2.Config
	jwtSecret   []byte
	itineraries *itinerary.Service
}

func New(cfg *config.Config, database *db.DB, itins *itinerary.Service) *API {
	api := &API{
		router:      mux.NewRouter(),
		db:          database,
		config:      cfg,
		jwtSecret:   []byte(cfg.JWTSecret),
		itineraries: itins,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURI,
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://discord.com/api/oauth2/authorize",
				TokenURL: "https://discord.com/api/oauth2/token",
			},
		},
	}

	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	// Auth endpoints
	a.router.HandleFunc("/api/auth/login", a.handleLogin).Methods("GET")
	a.router.HandleFunc("/api/auth/callback", a.handleCallback).Methods("GET")
	a.router.HandleFunc("/api/auth/logout", a.handleLogout).Methods("POST")

	// Protected endpoints
	protected := a.router.PathPrefix("/api").Subrouter()
	protected.Use(a.authMiddleware)

	protected.HandleFunc("/user/groups", a.handleUserGroups).Methods("GET")
	protected.HandleFunc("/groups", a.handleCreateGroup).Methods("POST")
	protected.HandleFunc("/groups/{group_id}", a.handleGetGroup).Methods("GET")
	protected.HandleFunc("/groups/{group_id}/members", a.handleListMembers).Methods("GET")
	protected.HandleFunc("/groups/{group_id}/members", a.handleAddMember).Methods("POST")
	protected.HandleFunc("/groups/{group_id}/members/{user_id}", a.handleRemoveMember).Methods("DELETE")
	protected.HandleFunc("/groups/{group_id}/invites", a.handleCreateInvite).Methods("POST")
	protected.HandleFunc("/invites/{code}/accept", a.handleAcceptInvite).Methods("POST")

	protected.HandleFunc("/groups/{group_id}/trips", a.handleListTrips).Methods("GET")
	protected.HandleFunc("/groups/{group_id}/trips", a.handleCreateTrip).Methods("POST")
	protected.HandleFunc("/trips/{trip_id}", a.handleGetTrip).Methods("GET")
	protected.HandleFunc("/trips/{trip_id}", a.handleUpdateTrip).Methods("PUT")
	protected.HandleFunc("/trips/{trip_id}", a.handleDeleteTrip).Methods("DELETE")
	protected.HandleFunc("/trips/{trip_id}/channel", a.handleLinkChannel).Methods("POST")

	protected.HandleFunc("/trips/{trip_id}/flights", a.handleListFlights).Methods("GET")
	protected.HandleFunc("/trips/{trip_id}/flights", a.handleCreateFlight).Methods("POST")
	protected.HandleFunc("/trips/{trip_id}/flights/{id}", a.handleUpdateFlight).Methods("PUT")
	protected.HandleFunc("/trips/{trip_id}/flights/{id}", a.handleDeleteFlight).Methods("DELETE")
	protected.HandleFunc("/trips/{trip_id}/lodgings", a.handleListLodgings).Methods("GET")
	protected.HandleFunc("/trips/{trip_id}/lodgings", a.handleCreateLodging).Methods("POST")
	protected.HandleFunc("/trips/{trip_id}/lodgings/{id}", a.handleUpdateLodging).Methods("PUT")
	protected.HandleFunc("/trips/{trip_id}/lodgings/{id}", a.handleDeleteLodging).Methods("DELETE")
	protected.HandleFunc("/trips/{trip_id}/tours", a.handleListTours).Methods("GET")
	protected.HandleFunc("/trips/{trip_id}/tours", a.handleCreateTour).Methods("POST")
	protected.HandleFunc("/trips/{trip_id}/tours/{id}", a.handleUpdateTour).Methods("PUT")
	protected.HandleFunc("/trips/{trip_id}/tours/{id}", a.handleDeleteTour).Methods("DELETE")

	protected.HandleFunc("/trips/{trip_id}/costs", a.handleTripCosts).Methods("GET")
	protected.HandleFunc("/trips/{trip_id}/itinerary", a.handleGenerateItinerary).Methods("POST")
}

func (a *API) Start() error {
	// Setup CORS - allow all origins for development, restrict in production
	// Note: When AllowedOrigins is "*", AllowCredentials must be false for security
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}

	handler := cors.New(corsOptions).Handler(a.router)

	log.Printf("API server listening on http://%s", a.config.WebBind)
	return http.ListenAndServe(a.config.WebBind, handler)
}
