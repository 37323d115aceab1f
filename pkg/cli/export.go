package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/usecase/history"
	"github.com/urfave/cli/v3"
)

func exportCommand() *cli.Command {
	var (
		cfg    config
		bucket string
		prefix string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "bucket",
			Aliases:     []string{"b"},
			Usage:       "Cloud Storage bucket to export history to",
			Sources:     cli.EnvVars("OMNIFIND_EXPORT_BUCKET"),
			Destination: &bucket,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "prefix",
			Usage:       "Object key prefix",
			Sources:     cli.EnvVars("OMNIFIND_EXPORT_PREFIX"),
			Destination: &prefix,
		},
	}
	flags = append(flags, storeFlags(&cfg)...)
	flags = append(flags, logFlags(&cfg)...)

	return &cli.Command{
		Name:  "export",
		Usage: "Export the history list as JSON to Cloud Storage",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, _ = cfg.withLogger(ctx, c)

			store, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			storage, err := cfg.newStorage(ctx, bucket)
			if err != nil {
				return err
			}

			key, err := history.New(store).Export(ctx, storage, prefix, time.Now())
			if err != nil {
				return goerr.Wrap(err, "failed to export history", goerr.V("bucket", bucket))
			}

			fmt.Fprintf(c.Root().Writer, "History exported: gs://%s/%s\n", bucket, key)
			return nil
		},
	}
}
