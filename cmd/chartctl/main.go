// Command chartctl runs the chart pipeline from the command line against the
// configured data source, without starting the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/DhruvDarbha/Env/internal/chart"
	"github.com/DhruvDarbha/Env/internal/config"
	"github.com/DhruvDarbha/Env/internal/inspection"
	"github.com/DhruvDarbha/Env/internal/inspection/sources"
	applog "github.com/DhruvDarbha/Env/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the per-invocation wiring shared by the subcommands.
type app struct {
	service *inspection.Service
	close   func() error
}

func setup(verbose bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if !verbose {
		level = logrus.WarnLevel.String()
	}
	logr, err := applog.New(level, cfg.Log.File)
	if err != nil {
		return nil, err
	}
	logr.SetOutput(os.Stderr)

	src, closeSource, err := sources.Open(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("open %s data source: %w", cfg.Source.Driver, err)
	}

	gateway := inspection.NewGateway(src, logr)
	return &app{
		service: inspection.NewService(gateway, chart.NewRenderer()),
		close:   closeSource,
	}, nil
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "chartctl",
		Short:        "Render produce quality charts and summaries",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log data source activity to stderr")

	root.AddCommand(newRenderCmd(&verbose), newSummaryCmd(&verbose))
	return root
}

func newRenderCmd(verbose *bool) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "render <ripeness|shelf_life> <supplier-email>",
		Short:     "Render a chart to a PNG file",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(inspection.ChartRipeness), string(inspection.ChartShelfLife)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := inspection.ChartKind(args[0])
			if !kind.Valid() {
				return fmt.Errorf("unknown chart kind %q", args[0])
			}
			if output == "" {
				output = fmt.Sprintf("%s_%s.png", inspection.SourceName(args[1]), kind)
			}

			a, err := setup(*verbose)
			if err != nil {
				return err
			}
			defer a.close()

			img, err := a.service.Chart(context.Background(), kind, args[1])
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, img, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, len(img))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <source>_<kind>.png)")
	return cmd
}

func newSummaryCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <supplier-email>",
		Short: "Print supplier summary statistics as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*verbose)
			if err != nil {
				return err
			}
			defer a.close()

			summary, err := a.service.Summary(context.Background(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
}
