package history

import (
	"github.com/m-mizutani/omnifind/pkg/repository"
)

// UseCase reads and exports divination history
type UseCase struct {
	repo repository.Repository
}

// New creates a history UseCase
func New(repo repository.Repository) *UseCase {
	return &UseCase{repo: repo}
}
