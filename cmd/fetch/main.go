package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sandeepanandm7-code/invest-ai/internal/config"
	"github.com/sandeepanandm7-code/invest-ai/internal/httpx"
	"github.com/sandeepanandm7-code/invest-ai/internal/quote"
	quotecache "github.com/sandeepanandm7-code/invest-ai/internal/quote/cache"
	"github.com/sandeepanandm7-code/invest-ai/internal/quote/ratelimit"
	"github.com/sandeepanandm7-code/invest-ai/internal/quote/yahoo"
	"github.com/sandeepanandm7-code/invest-ai/internal/report"
	"github.com/sandeepanandm7-code/invest-ai/internal/stock"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		symbolsCSV  string
		symbolsFile string
		output      string
		concurrency int
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch complete stock snapshots from Yahoo Finance",
		Long: "fetch pulls point-in-time quote data for a watchlist of symbols,\n" +
			"fills every gap with derived or estimated values, and writes one\n" +
			"JSON artifact with a fully populated record per symbol.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose)

			cfg, err := config.Load(configPath)
			if err != nil {
				logger.Error().Err(err).Msg("config")
				return err
			}
			if symbolsCSV != "" {
				cfg.Symbols = splitCSV(symbolsCSV)
			}
			if symbolsFile != "" {
				syms, err := config.LoadSymbols(symbolsFile)
				if err != nil {
					logger.Error().Err(err).Msg("symbols file")
					return err
				}
				cfg.Symbols = syms
			}
			if cmd.Flags().Changed("out") {
				cfg.Run.Output = output
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.Run.Concurrency = concurrency
			}
			if len(cfg.Symbols) == 0 {
				logger.Error().Msg("no symbols to fetch")
				return fmt.Errorf("no symbols to fetch")
			}

			return run(cmd.Context(), logger, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file (optional)")
	cmd.Flags().StringVar(&symbolsCSV, "symbols", "", "comma-separated ticker symbols (overrides config)")
	cmd.Flags().StringVar(&symbolsFile, "symbols-file", "", "YAML watchlist file (overrides config)")
	cmd.Flags().StringVar(&output, "out", "stock-analysis-data.json", "output artifact path")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "symbols fetched in parallel")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func run(ctx context.Context, logger zerolog.Logger, cfg config.Config) error {
	httpClient := httpx.New(time.Duration(cfg.Fetch.TimeoutSec) * time.Second)

	var src quote.Source = yahoo.New(yahoo.Config{
		Endpoint:    cfg.Fetch.Endpoint,
		MaxAttempts: cfg.Fetch.MaxAttempts,
		RetryDelay:  time.Duration(cfg.Fetch.RetryDelaySec) * time.Second,
		Timeout:     time.Duration(cfg.Fetch.TimeoutSec) * time.Second,
		Logger:      logger,
	}, httpClient)

	// Pacing toward the upstream holds regardless of worker count because
	// the gate wraps the shared source.
	if cfg.Fetch.MaxRequestsPerMinute > 0 {
		rate := float64(cfg.Fetch.MaxRequestsPerMinute) / 60.0
		burst := cfg.Fetch.Burst
		if burst <= 0 {
			burst = 1
		}
		src = &ratelimit.TokenBucketSource{S: src, TB: ratelimit.NewTokenBucket(rate, burst)}
	} else if cfg.Fetch.PacingSec > 0 {
		src = &ratelimit.MinInterval{S: src, Interval: time.Duration(cfg.Fetch.PacingSec) * time.Second}
	}
	if cfg.Fetch.CacheTTLSec > 0 {
		src = &quotecache.Source{S: src, TTL: time.Duration(cfg.Fetch.CacheTTLSec) * time.Second}
	}

	completer := stock.NewCompleter(stock.WithSource(src.Name()))
	builder := report.NewBuilder(src.Name())

	total := len(cfg.Symbols)
	logger.Info().Int("symbols", total).Int("concurrency", cfg.Run.Concurrency).Msg("starting run")

	var g errgroup.Group
	g.SetLimit(max(cfg.Run.Concurrency, 1))
	for i, sym := range cfg.Symbols {
		g.Go(func() error {
			log := logger.With().Str("symbol", sym).Logger()
			log.Info().Msgf("[%d/%d] fetching", i+1, total)

			raw, err := src.Fetch(ctx, sym)
			if err != nil {
				builder.Fail(sym)
				log.Error().Msg("no data")
				return nil
			}
			rec, err := completer.Complete(sym, raw)
			if err != nil {
				builder.Fail(sym)
				log.Error().Err(err).Msg("dropped")
				return nil
			}
			builder.Add(sym, rec)
			log.Info().
				Float64("price", rec.Price).
				Float64("pe", rec.PE).
				Str("mktcap", humanCap(rec.MarketCap)).
				Msg("completed")
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures are counted per symbol

	if err := builder.Snapshot().WriteFile(cfg.Run.Output); err != nil {
		logger.Error().Err(err).Msg("write artifact")
		return err
	}

	printSummary(builder)
	completed, failed := builder.Counts()
	logger.Info().
		Int("completed", completed).
		Int("failed", failed).
		Str("output", cfg.Run.Output).
		Msg("run finished")
	if failed > 0 {
		logger.Warn().Strs("symbols", builder.Failed()).Msg("no data for")
	}
	return nil
}

func printSummary(b *report.Builder) {
	recs := b.Records()
	if len(recs) == 0 {
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"SYMBOL", "PRICE", "CHG%", "P/E", "MKT CAP"})
	for _, r := range recs {
		chg := fmt.Sprintf("%.2f%%", r.ChangePercent)
		if r.ChangePercent > 0 {
			chg = text.Colors{text.FgGreen}.Sprint(chg)
		} else if r.ChangePercent < 0 {
			chg = text.Colors{text.FgRed}.Sprint(chg)
		}
		tw.AppendRow(table.Row{
			r.Symbol,
			fmt.Sprintf("%.2f", r.Price),
			chg,
			fmt.Sprintf("%.1f", r.PE),
			humanCap(r.MarketCap),
		})
	}
	tw.Render()
}

func humanCap(v int64) string {
	switch f := float64(v); {
	case f >= 1e12:
		return fmt.Sprintf("$%.1fT", f/1e12)
	case f >= 1e9:
		return fmt.Sprintf("$%.1fB", f/1e9)
	case f >= 1e6:
		return fmt.Sprintf("$%.1fM", f/1e6)
	default:
		return fmt.Sprintf("$%.0f", f)
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
