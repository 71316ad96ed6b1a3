// Package workflow runs the publish and change-control actions against the
// archive store.
//
// A live record moves through these states:
//
//	Absent --Upload--> Live --Submit--> Pending --Approve--> Live (updated)
//	                                    Pending --Reject---> Live (unchanged)
//
// Records are never deleted once live.
package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/ukaji3/thermbat-go/internal/logging"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/store"
)

// Service performs workflow actions for one request.
type Service struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger; the default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp uploads.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService returns a Service over st.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "workflow")
	return s
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, s.logger)
}
