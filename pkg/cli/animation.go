package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/briandowns/spinner"
)

const tossCount = 6

// tossLine throws three coins (heads 3, tails 2) and returns the line drawn
// for their sum
func tossLine(r *rand.Rand) string {
	sum := 0
	for range 3 {
		sum += 2 + r.IntN(2)
	}
	switch sum {
	case 6:
		return "━━ ━━ x"
	case 7:
		return "━━━━━"
	case 8:
		return "━━ ━━"
	default:
		return "━━━━━ o"
	}
}

// castCoins shows six tosses on w. The lines are decoration only: the
// reading is computed from the input alone.
func castCoins(ctx context.Context, w io.Writer, delay time.Duration, r *rand.Rand) error {
	s := spinner.New(spinner.CharSets[11], 80*time.Millisecond, spinner.WithWriter(w))

	for i := 1; i <= tossCount; i++ {
		s.Suffix = fmt.Sprintf(" toss %d/%d", i, tossCount)
		s.Start()

		select {
		case <-ctx.Done():
			s.Stop()
			return ctx.Err()
		case <-time.After(delay):
		}

		s.Stop()
		fmt.Fprintf(w, "%d  %s\n", i, tossLine(r))
	}
	return nil
}
