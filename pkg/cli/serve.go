package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/service/mcp"
	"github.com/m-mizutani/omnifind/pkg/usecase/history"
	"github.com/m-mizutani/omnifind/pkg/usecase/reading"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		cfg  config
		addr string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Serve streamable HTTP on this address instead of stdio (e.g. 127.0.0.1:8080)",
			Sources:     cli.EnvVars("OMNIFIND_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, storeFlags(&cfg)...)
	flags = append(flags, logFlags(&cfg)...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Run an MCP server exposing casting and history tools",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, logger := cfg.withLogger(ctx, c)

			store, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			server := mcp.NewServer(reading.New(store), history.New(store))

			if addr == "" {
				logger.Info("serving MCP over stdio")
				return server.Run(ctx)
			}

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("serving MCP over HTTP", "addr", addr)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return goerr.Wrap(err, "http server failed", goerr.V("addr", addr))

			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shut down http server")
				}
				return nil
			}
		},
	}
}
