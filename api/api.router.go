package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/itsatony/stationhub/api/middleware"
	"github.com/itsatony/stationhub/api/resources"
	"github.com/itsatony/stationhub/internal/hubservice"
)

// RouterConfig carries the session cookie settings for the HTTP surface
type RouterConfig struct {
	CookieName   string
	CookieSecure bool
}

type Router struct {
	router    *mux.Router
	sessions  *middleware.SessionMiddleware
	resources *resources.Resources
}

const defaultCookieName = "stationhub_session"

func NewRouter(svc *hubservice.HubService, config RouterConfig) *Router {
	if config.CookieName == "" {
		config.CookieName = defaultCookieName
	}
	r := &Router{
		router:   mux.NewRouter(),
		sessions: middleware.NewSessionMiddleware(svc, middleware.SessionConfig{CookieName: config.CookieName}),
		resources: resources.NewResources(svc, resources.CookieConfig{
			Name:   config.CookieName,
			Secure: config.CookieSecure,
		}),
	}

	r.setupRoutes()
	return r
}

// Resources exposes the handlers so the server can plug in health and metrics
func (r *Router) Resources() *resources.Resources {
	return r.resources
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/v1").Subrouter()
	api.Use(r.sessions.Authenticate)

	// Public routes
	api.HandleFunc("/health", r.handle(func() http.HandlerFunc { return r.resources.HealthCheck })).Methods(http.MethodGet)
	api.HandleFunc("/metrics", r.handle(func() http.HandlerFunc { return r.resources.Metrics })).Methods(http.MethodGet)
	api.HandleFunc("/docs/swagger.json", r.resources.Docs).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", r.resources.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", r.resources.Auth.Register).Methods(http.MethodPost)

	// Session routes; each operation applies its own guard
	api.HandleFunc("/auth/logout", r.resources.Auth.Logout).Methods(http.MethodPost)
	api.HandleFunc("/me", r.resources.Users.Me).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", r.resources.Stations.Dashboard).Methods(http.MethodGet)

	// Users
	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("", r.resources.Users.ListUsers).Methods(http.MethodGet)
	users.HandleFunc("", r.resources.Users.CreateUser).Methods(http.MethodPost)
	users.HandleFunc("/{id}", r.resources.Users.DeleteUser).Methods(http.MethodDelete)

	// Stations
	stations := api.PathPrefix("/stations").Subrouter()
	stations.HandleFunc("", r.resources.Stations.ListStations).Methods(http.MethodGet)
	stations.HandleFunc("", r.resources.Stations.CreateStation).Methods(http.MethodPost)
	stations.HandleFunc("/{id}", r.resources.Stations.GetStation).Methods(http.MethodGet)
	stations.HandleFunc("/{id}", r.resources.Stations.UpdateStation).Methods(http.MethodPut)
	stations.HandleFunc("/{id}", r.resources.Stations.DeleteStation).Methods(http.MethodDelete)
	stations.HandleFunc("/{id}/sensors", r.resources.Sensors.ListSensors).Methods(http.MethodGet)
	stations.HandleFunc("/{id}/sensors", r.resources.Sensors.AddSensor).Methods(http.MethodPost)
	stations.HandleFunc("/{id}/router", r.resources.Routers.GetRouter).Methods(http.MethodGet)
	stations.HandleFunc("/{id}/router", r.resources.Routers.ConfigureRouter).Methods(http.MethodPut, http.MethodPost)
	stations.HandleFunc("/{id}/router", r.resources.Routers.DeleteRouter).Methods(http.MethodDelete)
	stations.HandleFunc("/{id}/details", r.resources.Details.ListDetails).Methods(http.MethodGet)
	stations.HandleFunc("/{id}/details", r.resources.Details.AddDetail).Methods(http.MethodPost)
	stations.HandleFunc("/{id}/breakdowns", r.resources.Breakdowns.ListBreakdowns).Methods(http.MethodGet)
	stations.HandleFunc("/{id}/breakdowns", r.resources.Breakdowns.ReportBreakdown).Methods(http.MethodPost)
	stations.HandleFunc("/{id}/interventions", r.resources.Interventions.ListInterventions).Methods(http.MethodGet)
	stations.HandleFunc("/{id}/interventions", r.resources.Interventions.ScheduleIntervention).Methods(http.MethodPost)
	stations.HandleFunc("/{id}/interventions/completed", r.resources.Interventions.AddIntervention).Methods(http.MethodPost)
	stations.HandleFunc("/{id}/history", r.resources.History.ListHistory).Methods(http.MethodGet)

	// Station children by id
	api.HandleFunc("/sensors/{id}", r.resources.Sensors.UpdateSensor).Methods(http.MethodPut)
	api.HandleFunc("/sensors/{id}", r.resources.Sensors.DeleteSensor).Methods(http.MethodDelete)
	api.HandleFunc("/details/{id}", r.resources.Details.UpdateDetail).Methods(http.MethodPut)
	api.HandleFunc("/details/{id}", r.resources.Details.DeleteDetail).Methods(http.MethodDelete)

	breakdowns := api.PathPrefix("/breakdowns").Subrouter()
	breakdowns.HandleFunc("/{id}", r.resources.Breakdowns.GetBreakdown).Methods(http.MethodGet)
	breakdowns.HandleFunc("/{id}", r.resources.Breakdowns.UpdateBreakdown).Methods(http.MethodPut)
	breakdowns.HandleFunc("/{id}", r.resources.Breakdowns.DeleteBreakdown).Methods(http.MethodDelete)
	breakdowns.HandleFunc("/{id}/resolve", r.resources.Breakdowns.ResolveBreakdown).Methods(http.MethodPost)

	interventions := api.PathPrefix("/interventions").Subrouter()
	interventions.HandleFunc("/{id}", r.resources.Interventions.GetIntervention).Methods(http.MethodGet)
	interventions.HandleFunc("/{id}", r.resources.Interventions.UpdateIntervention).Methods(http.MethodPut)
	interventions.HandleFunc("/{id}", r.resources.Interventions.DeleteIntervention).Methods(http.MethodDelete)
	interventions.HandleFunc("/{id}/complete", r.resources.Interventions.CompleteIntervention).Methods(http.MethodPost)

	api.HandleFunc("/history/{id}", r.resources.History.PurgeHistory).Methods(http.MethodDelete)
}

// handle defers the handler lookup to request time so SetHealthCheck and
// SetMetrics may be called after the routes are registered
func (r *Router) handle(get func() http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		get()(w, req)
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
