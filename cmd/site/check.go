//go:build !js && !wasm

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Its-donkey/landing/internal/config"
	"github.com/Its-donkey/landing/internal/site"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [page.html]",
		Short: "Report whether a page carries the hooks the behaviors bind to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := config.Load(cfgFile)
				if err != nil {
					return err
				}
				path = filepath.Join(cfg.Dir, cfg.Index)
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open page: %w", err)
			}
			defer f.Close()

			report, err := site.CheckContract(f)
			if err != nil {
				return err
			}
			if _, err := report.WriteTo(cmd.OutOrStdout()); err != nil {
				return err
			}
			if !report.OK() {
				return errors.New(path + " does not satisfy the page contract")
			}
			return nil
		},
	}
}
