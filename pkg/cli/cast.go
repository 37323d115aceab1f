package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/model"
	"github.com/m-mizutani/omnifind/pkg/usecase/reading"
	"github.com/urfave/cli/v3"
)

const tossDelay = 400 * time.Millisecond

func castCommand() *cli.Command {
	var (
		cfg         config
		out         output
		input       model.Input
		direction   string
		noAnimation bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "item",
			Aliases:     []string{"i"},
			Usage:       "What was lost",
			Destination: &input.ItemName,
		},
		&cli.StringFlag{
			Name:        "location",
			Aliases:     []string{"l"},
			Usage:       "Where it was lost (e.g. Subway, Home, 酒店)",
			Destination: &input.LostLocation,
		},
		&cli.StringFlag{
			Name:        "direction",
			Aliases:     []string{"d"},
			Usage:       "Direction of the loss (NORTH, SOUTH, EAST, WEST, NORTHEAST, NORTHWEST, SOUTHEAST, SOUTHWEST, CENTER)",
			Destination: &direction,
		},
		&cli.StringFlag{
			Name:        "time",
			Aliases:     []string{"t"},
			Usage:       "When it was lost: now, 1h, 12h or 2006-01-02T15:04",
			Destination: &input.LostTime,
		},
		&cli.BoolFlag{
			Name:        "no-animation",
			Usage:       "Skip the coin toss animation",
			Sources:     cli.EnvVars("OMNIFIND_NO_ANIMATION"),
			Destination: &noAnimation,
		},
	}
	flags = append(flags, outputFlags(&out)...)
	flags = append(flags, storeFlags(&cfg)...)
	flags = append(flags, logFlags(&cfg)...)

	return &cli.Command{
		Name:  "cast",
		Usage: "Cast a divination for a lost item",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, logger := cfg.withLogger(ctx, c)
			if err := out.validate(); err != nil {
				return err
			}
			lang := out.language()

			if direction != "" {
				d, ok := model.ParseDirection(direction)
				if !ok {
					logger.Warn("unknown direction, using center", "direction", direction)
				}
				input.Direction = d
			}

			if input.ItemName == "" && isTerminal(c.Root().Reader) {
				if err := promptInput(c.Root().Reader, c.Root().ErrWriter, &input, lang); err != nil {
					return err
				}
			}

			// Initialize dependencies
			store, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			uc := reading.New(store)

			if !noAnimation && input.ItemName != "" {
				r := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
				if err := castCoins(ctx, c.Root().ErrWriter, tossDelay, r); err != nil {
					return goerr.Wrap(err, "casting interrupted")
				}
			}

			result, err := uc.Cast(ctx, input, lang)
			if err != nil {
				return goerr.Wrap(err, "failed to cast")
			}

			w := c.Root().Writer
			if done, err := out.structured(w, result.Item); done {
				return err
			}

			fmt.Fprintln(w, renderItem(result.Item, lang))
			fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(labelsFor(lang).records, len(result.History))))
			return nil
		},
	}
}
