package hubservice

import (
	"time"

	"github.com/itsatony/stationhub/internal/cleanup"
	"github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/events"
	"github.com/itsatony/stationhub/internal/history"
	"github.com/itsatony/stationhub/internal/repository"
	"github.com/itsatony/stationhub/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// MutationRecorder counts committed mutations by history action
type MutationRecorder interface {
	RecordMutation(action string)
}

type nopRecorder struct{}

func (nopRecorder) RecordMutation(string) {}

// HubService implements every station, user and history operation. Each
// operation takes the acting identity explicitly and runs its guard first.
type HubService struct {
	store        repository.Store
	sessions     session.Store
	Cleanup      *cleanup.CleanupService
	history      *history.Recorder
	publisher    events.Publisher
	monitor      MutationRecorder
	now          func() time.Time
	passwordCost int
}

// Option customises a HubService
type Option func(*HubService)

// WithClock replaces time.Now, e.g. for deterministic tests
func WithClock(now func() time.Time) Option {
	return func(s *HubService) { s.now = now }
}

// WithPublisher sets the post-commit history event publisher
func WithPublisher(p events.Publisher) Option {
	return func(s *HubService) { s.publisher = p }
}

// WithMonitor sets the mutation counter
func WithMonitor(m MutationRecorder) Option {
	return func(s *HubService) { s.monitor = m }
}

// WithPasswordCost sets the bcrypt cost used for new passwords
func WithPasswordCost(cost int) Option {
	return func(s *HubService) { s.passwordCost = cost }
}

// New creates a new HubService instance
func New(store repository.Store, sessions session.Store, opts ...Option) *HubService {
	svc := &HubService{
		store:        store,
		sessions:     sessions,
		publisher:    events.NopPublisher{},
		monitor:      nopRecorder{},
		now:          time.Now,
		passwordCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.history = history.NewRecorder(svc.now)
	svc.Cleanup = cleanup.New(store)
	return svc
}

// Validate checks if all required dependencies are initialized
func (s *HubService) Validate() error {
	if s.store == nil {
		return ErrMissingDependency("store")
	}
	if s.sessions == nil {
		return ErrMissingDependency("sessions")
	}
	return nil
}

func ErrMissingDependency(name string) error {
	return errors.NewInternalError("missing dependency: "+name, nil)
}

// timestamp returns the current time as stored: UTC, microsecond precision
func (s *HubService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
