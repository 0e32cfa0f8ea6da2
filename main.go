//go:build !js && !wasm

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

type procConfig struct {
	Name string
	Args []string
	Env  []string
	// Setup processes must finish before the long-running ones start.
	Setup bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	procs := []procConfig{
		{
			Name:  "build-ui-wasm",
			Args:  []string{"go", "build", "-o", "ui/main.wasm", "./cmd/ui-wasm"},
			Env:   []string{"GOOS=js", "GOARCH=wasm"},
			Setup: true,
		},
		{
			Name: "site",
			Args: append([]string{"go", "run", "./cmd/site", "serve"}, os.Args[1:]...),
		},
	}

	if err := runAll(ctx, procs); err != nil {
		fmt.Fprintf(os.Stderr, "landing exited with error: %v\n", err)
		os.Exit(1)
	}
}

func command(ctx context.Context, cfg procConfig) *exec.Cmd {
	cmd := exec.CommandContext(ctx, cfg.Args[0], cfg.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(cfg.Env) > 0 {
		cmd.Env = append(append([]string{}, os.Environ()...), cfg.Env...)
	}
	return cmd
}

func runAll(ctx context.Context, procs []procConfig) error {
	if len(procs) == 0 {
		return fmt.Errorf("no processes configured")
	}

	var services []procConfig
	for _, cfg := range procs {
		if !cfg.Setup {
			services = append(services, cfg)
			continue
		}
		if err := command(ctx, cfg).Run(); err != nil {
			return fmt.Errorf("%s: %w", cfg.Name, err)
		}
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(services))
	for _, cfg := range services {
		wg.Add(1)
		go func(cfg procConfig) {
			defer wg.Done()
			if err := command(ctx, cfg).Run(); err != nil {
				// If the context was cancelled, treat the exit as expected.
				select {
				case <-ctx.Done():
					return
				default:
				}
				errCh <- fmt.Errorf("%s exited: %w", cfg.Name, err)
			}
		}(cfg)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	case err := <-errCh:
		return err
	case <-done:
	}
	return nil
}
