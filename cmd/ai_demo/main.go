// README: Command-line harness for exercising the providers outside the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"voyage/internal/ai"
	"voyage/internal/config"
	"voyage/internal/logging"
	"voyage/internal/maps"
	"voyage/internal/modules/itinerary"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "ai_demo",
		Short:        "Run itinerary generation against the configured LLM providers",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log provider attempts to stderr")

	root.AddCommand(newGenerateCmd(&verbose), newRefineCmd(&verbose), newCheckEnvCmd())
	return root
}

func newGenerateCmd(verbose *bool) *cobra.Command {
	profile := itinerary.DemoProfile()
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an itinerary (defaults to the demo profile)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := newService(cmd.Context(), *verbose)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.Generate(cmd.Context(), profile)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res)
		},
	}
	f := cmd.Flags()
	f.StringVar(&profile.Travelers, "travelers", profile.Travelers, "who is travelling")
	f.Float64Var(&profile.Budget, "budget", profile.Budget, "total budget in USD")
	f.StringSliceVar(&profile.Vibe, "vibe", profile.Vibe, "comma separated vibes")
	f.StringVar(&profile.Destination, "destination", profile.Destination, "destination")
	f.StringVar(&profile.Dates, "dates", profile.Dates, "dates or duration")
	return cmd
}

func newRefineCmd(verbose *bool) *cobra.Command {
	var (
		file        string
		instruction string
	)
	cmd := &cobra.Command{
		Use:   "refine",
		Short: "Refine an itinerary JSON file (defaults to the mock itinerary)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := json.Marshal(itinerary.MockItinerary())
			if err != nil {
				return err
			}
			if file != "" {
				if current, err = os.ReadFile(file); err != nil {
					return err
				}
			}

			svc, closeFn, err := newService(cmd.Context(), *verbose)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.Refine(cmd.Context(), current, instruction)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "itinerary JSON file")
	cmd.Flags().StringVarP(&instruction, "instruction", "i", "", "what to change")
	_ = cmd.MarkFlagRequired("instruction")
	return cmd
}

func newCheckEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-env",
		Short: "Report which provider keys are configured",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), cfg.AI.Report())
		},
	}
}

func newService(ctx context.Context, verbose bool) (*itinerary.Service, func(), error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = logging.New("debug", true); err != nil {
			return nil, nil, err
		}
	}

	providers, closeFn, err := ai.BuildProviders(ctx, cfg.AI, logger)
	if err != nil {
		return nil, nil, err
	}
	opts := itinerary.Options{MockDelay: cfg.AI.MockDelay}
	if cfg.Maps.APIKey != "" {
		places, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		opts.Highlights = places
	}
	return itinerary.NewService(providers, logger, opts), closeFn, nil
}

func printResult(out, errOut io.Writer, res *itinerary.Result) error {
	fmt.Fprintf(errOut, "provider=%s attempts=%d\n", res.Provider, res.Attempts)
	return writeJSON(out, res.Itinerary)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
