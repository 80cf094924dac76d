// FilePath: api/resources/resources.go
package resources

import (
	"net/http"
	"time"

	"github.com/itsatony/stationhub/internal/hubservice"
)

// CookieConfig controls the session cookie set on login
type CookieConfig struct {
	Name   string
	Secure bool
}

// Resources holds all HTTP resource handlers
type Resources struct {
	Auth          *AuthHandlers
	Users         *UserHandlers
	Stations      *StationHandlers
	Sensors       *SensorHandlers
	Routers       *RouterHandlers
	Details       *DetailHandlers
	Breakdowns    *BreakdownHandlers
	Interventions *InterventionHandlers
	History       *HistoryHandlers
	Docs          func(w http.ResponseWriter, r *http.Request)
	HealthCheck   func(w http.ResponseWriter, r *http.Request)
	Metrics       func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService, cookies CookieConfig) *Resources {
	return &Resources{
		Auth:          &AuthHandlers{hubservice: svc, cookies: cookies, now: time.Now},
		Users:         &UserHandlers{hubservice: svc},
		Stations:      &StationHandlers{hubservice: svc},
		Sensors:       &SensorHandlers{hubservice: svc},
		Routers:       &RouterHandlers{hubservice: svc},
		Details:       &DetailHandlers{hubservice: svc},
		Breakdowns:    &BreakdownHandlers{hubservice: svc},
		Interventions: &InterventionHandlers{hubservice: svc},
		History:       &HistoryHandlers{hubservice: svc},
		Docs:          SwaggerDoc,
		HealthCheck:   func(w http.ResponseWriter, r *http.Request) { respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}) },
		Metrics:       http.NotFound,
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

// SetMetrics sets the metrics handler
func (r *Resources) SetMetrics(h func(w http.ResponseWriter, r *http.Request)) {
	r.Metrics = h
}
