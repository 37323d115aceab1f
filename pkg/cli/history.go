package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/model"
	"github.com/m-mizutani/omnifind/pkg/usecase/history"
	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	var (
		cfg config
		out output
	)

	var flags []cli.Flag
	flags = append(flags, outputFlags(&out)...)
	flags = append(flags, storeFlags(&cfg)...)
	flags = append(flags, logFlags(&cfg)...)

	return &cli.Command{
		Name:  "history",
		Usage: "List recorded divinations, newest first",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, _ = cfg.withLogger(ctx, c)
			if err := out.validate(); err != nil {
				return err
			}

			store, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := history.New(store).List(ctx)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if done, err := out.structured(w, items); done {
				return err
			}

			if len(items) == 0 {
				fmt.Fprintln(w, "No divination history yet")
				return nil
			}
			fmt.Fprintln(w, renderHistory(items, out.language()))
			return nil
		},
	}
}

func showCommand() *cli.Command {
	var (
		cfg config
		out output
	)

	var flags []cli.Flag
	flags = append(flags, outputFlags(&out)...)
	flags = append(flags, storeFlags(&cfg)...)
	flags = append(flags, logFlags(&cfg)...)

	return &cli.Command{
		Name:      "show",
		Usage:     "Show one recorded divination",
		ArgsUsage: "<history-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, _ = cfg.withLogger(ctx, c)
			if err := out.validate(); err != nil {
				return err
			}

			id := model.HistoryID(c.Args().First())
			if id == "" {
				return goerr.New("history id is required")
			}

			store, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			item, err := history.New(store).Show(ctx, id)
			if err != nil {
				return goerr.Wrap(err, "failed to show history", goerr.V("id", id))
			}

			w := c.Root().Writer
			if done, err := out.structured(w, item); done {
				return err
			}

			lang := out.language()
			if !c.IsSet("lang") && item.Result.Lang != "" {
				lang = item.Result.Lang
			}
			fmt.Fprintln(w, renderItem(item, lang))
			return nil
		},
	}
}
