// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// dicomtags prints the tags of DICOM files as a flat, indented table.
//
// Usage:
//
//	dicomtags [flags] FILE...
//	dicomtags serve [flags]
//
// Sequences are summarized as "Sequence of N items" and their items' elements follow, indented
// one level per nesting depth.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GoogleCloudPlatform/go-dicom-tagview/internal/api"
	"github.com/GoogleCloudPlatform/go-dicom-tagview/internal/app"
	"github.com/GoogleCloudPlatform/go-dicom-tagview/internal/config"
	"github.com/GoogleCloudPlatform/go-dicom-tagview/view"
)

// Flags
var (
	configPath  string
	decoder     string
	maxDepth    int
	bulkLimit   int64
	includeMeta bool

	format string
	query  string

	addr    string
	dataDir string
)

var log = slog.New(slog.NewTextHandler(os.Stderr, nil))

var rootCmd = &cobra.Command{
	Use:   "dicomtags [flags] FILE...",
	Short: "Print the tags of DICOM files as a flat, indented table",
	Long: `dicomtags decodes DICOM files and prints one row per data element. Elements of
sequence items follow their sequence, indented one level per nesting depth.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("format") {
			cfg.Format = format
		}

		a, err := app.New(cfg)
		if err != nil {
			return err
		}

		failed := 0
		for _, path := range args {
			rows, err := a.Rows(path, query)
			if err != nil {
				// no partial output for a file that fails
				log.Error("reading file", "file", path, "error", err)
				failed++
				continue
			}
			if len(args) > 1 && cfg.Format == view.FormatTable {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			if err := view.Render(cmd.OutOrStdout(), cfg.Format, rows); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files could not be read", failed, len(args))
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the flattened tags of a directory of .dcm files over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr = addr
		}
		if cmd.Flags().Changed("dir") {
			cfg.DataDir = dataDir
		}

		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg, a)
	},
}

// loadConfig reads the config file and applies the flags set on the command line
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("decoder") {
		cfg.Decoder = decoder
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if flags.Changed("bulk-limit") {
		cfg.BulkDataLimit = bulkLimit
	}
	if flags.Changed("meta") {
		cfg.IncludeMeta = includeMeta
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg config.Config, a *app.App) error {
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.NewServer(a, cfg.DataDir, log),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting dicomtags", "addr", cfg.Addr, "dir", cfg.DataDir, "decoder", cfg.Decoder)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.StringVar(&decoder, "decoder", "", "decoder: builtin or suyashkumar")
	flags.IntVar(&maxDepth, "max-depth", 0, "maximum sequence nesting depth")
	flags.Int64Var(&bulkLimit, "bulk-limit", 0, "largest binary payload loaded, in bytes (-1 loads all)")
	flags.BoolVar(&includeMeta, "meta", false, "include file meta elements (0002,xxxx)")

	rootCmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, json or tsv")
	rootCmd.Flags().StringVarP(&query, "query", "q", "", "only show rows containing this text (case-insensitive)")

	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address")
	serveCmd.Flags().StringVar(&dataDir, "dir", "", "directory of .dcm files to serve")

	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("dicomtags", "error", err)
		os.Exit(1)
	}
}
