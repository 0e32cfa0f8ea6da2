//go:build !js && !wasm

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Its-donkey/landing/internal/config"
	"github.com/Its-donkey/landing/internal/site"
	"github.com/Its-donkey/landing/logging"
)

func newServeCmd() *cobra.Command {
	var listen, dir, endpoint string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the static page with the configured form endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}
			if cmd.Flags().Changed("dir") {
				cfg.Dir = dir
			}
			if cmd.Flags().Changed("form-endpoint") {
				cfg.FormEndpoint = endpoint
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			logger, closeLog, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			srv, err := site.NewServer(cfg, logger)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, cfg.Listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "address to serve on (overrides config)")
	cmd.Flags().StringVar(&dir, "dir", "", "directory holding index.html and main.wasm (overrides config)")
	cmd.Flags().StringVar(&endpoint, "form-endpoint", "", "form relay endpoint (overrides config)")
	return cmd
}

func newLogger(cfg config.Config) (*logging.Logger, func(), error) {
	writers := []io.Writer{os.Stdout}
	closer := func() {}
	if cfg.LogDir != "" {
		fw, err := logging.NewFileWriter(cfg.LogDir, cfg.LogFile, 10, 5)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, fw)
		closer = func() { _ = fw.Close() }
	}
	return logging.New("site", logging.ParseLevel(cfg.LogLevel), writers...), closer, nil
}
