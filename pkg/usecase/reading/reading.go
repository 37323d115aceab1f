package reading

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/repository"
)

var (
	// ErrEmptyItemName is returned when the item name is blank
	ErrEmptyItemName = goerr.New("item name is required")

	// ErrCalculationFailed is returned when the calculator could not produce a result
	ErrCalculationFailed = goerr.New("divination calculation failed")
)

// UseCase casts readings and records them in history
type UseCase struct {
	repo     repository.Repository
	now      func() time.Time
	location *time.Location
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		uc.now = now
	}
}

// WithLocation sets the time zone lost times are read in
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCase) {
		if loc != nil {
			uc.location = loc
		}
	}
}

// New creates a reading UseCase
func New(repo repository.Repository, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:     repo,
		now:      time.Now,
		location: time.Local,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

func (u *UseCase) clock() time.Time {
	return u.now().In(u.location)
}
