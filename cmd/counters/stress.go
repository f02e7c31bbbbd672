package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llxisdsh/counters"
	"github.com/llxisdsh/counters/metrics"
)

type stressConfig struct {
	Namespace   string
	Workers     int
	Keys        int
	Calls       int
	Start       uint16
	Timeout     time.Duration
	MetricsAddr string
}

type stressResult struct {
	Calls   int
	Stats   *counters.Stats
	Elapsed time.Duration
}

func newStressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Hammer a fresh registry with concurrent callers and verify the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := a.namespacer().Namespace()
			if err != nil {
				return err
			}
			cfg := stressConfig{
				Namespace:   ns,
				Workers:     a.v.GetInt("stress.workers"),
				Keys:        a.v.GetInt("stress.keys"),
				Calls:       a.v.GetInt("stress.calls"),
				Start:       uint16(a.v.GetUint("stress.start")),
				Timeout:     a.v.GetDuration("stress.timeout"),
				MetricsAddr: a.v.GetString("stress.metrics_addr"),
			}
			res, err := runStress(cmd.Context(), cfg, a.logger)
			if err != nil {
				a.logger.Error("stress failed", zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s calls over %s keys in %s\n%s",
				humanize.Comma(int64(res.Calls)), humanize.Comma(int64(res.Stats.Bound)),
				res.Elapsed, res.Stats.ToString())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int("workers", 64, "number of concurrent callers")
	flags.Int("keys", 1000, "number of distinct keys")
	flags.Int("calls", 1000, "calls per worker")
	flags.Uint16("start", 0, "start value of every counter")
	flags.Duration("timeout", time.Minute, "fail if the run takes longer [0 = forever]")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address while running")

	_ = a.v.BindPFlag("stress.workers", flags.Lookup("workers"))
	_ = a.v.BindPFlag("stress.keys", flags.Lookup("keys"))
	_ = a.v.BindPFlag("stress.calls", flags.Lookup("calls"))
	_ = a.v.BindPFlag("stress.start", flags.Lookup("start"))
	_ = a.v.BindPFlag("stress.timeout", flags.Lookup("timeout"))
	_ = a.v.BindPFlag("stress.metrics_addr", flags.Lookup("metrics-addr"))
	return cmd
}

func (cfg stressConfig) validate() error {
	if cfg.Workers < 1 || cfg.Keys < 1 || cfg.Calls < 1 {
		return fmt.Errorf("workers, keys and calls must be positive: %d/%d/%d", cfg.Workers, cfg.Keys, cfg.Calls)
	}
	// Values are 16 bits wide; a key used more often would wrap and the
	// gap check could not tell a wrap from a duplicate.
	if perKey := (cfg.Workers*cfg.Calls + cfg.Keys - 1) / cfg.Keys; perKey > 1<<16 {
		return fmt.Errorf("%d calls per key exceed the counter range", perKey)
	}
	return nil
}

// runStress spreads Workers*Calls fetch-adds over Keys random ids on a
// fresh registry, then checks that every key handed out a gap-free run
// of values and that the chain has exactly the blocks it needs.
func runStress(ctx context.Context, cfg stressConfig, logger *zap.Logger) (*stressResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	c := counters.New(counters.WithNamespacer(counters.StaticNamespace(cfg.Namespace)))
	if cfg.MetricsAddr != "" {
		stop, err := serveMetrics(cfg.MetricsAddr, c, logger)
		if err != nil {
			return nil, err
		}
		defer stop()
	}

	ids := make([]string, cfg.Keys)
	for i := range ids {
		ids[i] = uuid.NewString()
	}

	logger.Info("stress started",
		zap.String("namespace", cfg.Namespace),
		zap.Int("workers", cfg.Workers),
		zap.Int("keys", cfg.Keys),
		zap.Int("calls", cfg.Calls),
		zap.Uint16("start", cfg.Start))

	results := make([]map[int][]uint16, cfg.Workers)
	begin := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		g.Go(func() error {
			seen := make(map[int][]uint16)
			for j := range cfg.Calls {
				if j%256 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				k := (w*cfg.Calls + j) % cfg.Keys
				v, err := c.FetchAdd(ids[k], cfg.Start)
				if err != nil {
					logger.Warn("fetch failed", zap.Int("worker", w), zap.Error(err))
					return err
				}
				seen[k] = append(seen[k], v)
			}
			results[w] = seen
			return nil
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("stress workers: %w", err)
		}
	case <-ctx.Done():
		return nil, fmt.Errorf("stress run did not finish: %w", ctx.Err())
	}
	elapsed := time.Since(begin)

	res := &stressResult{
		Calls:   cfg.Workers * cfg.Calls,
		Stats:   c.Stats(),
		Elapsed: elapsed,
	}
	if err := verifyStress(cfg, ids, results, res.Stats); err != nil {
		return nil, err
	}

	rate := float64(res.Calls) / elapsed.Seconds()
	logger.Info("stress finished",
		zap.String("calls", humanize.Comma(int64(res.Calls))),
		zap.String("rate", humanize.SIWithDigits(rate, 2, "calls/s")),
		zap.Int("blocks", res.Stats.Blocks),
		zap.Duration("elapsed", elapsed))
	return res, nil
}

var errStressViolation = errors.New("stress: invariant violated")

func verifyStress(cfg stressConfig, ids []string, results []map[int][]uint16, s *counters.Stats) error {
	perKey := make([][]uint16, cfg.Keys)
	for _, seen := range results {
		for k, vs := range seen {
			perKey[k] = append(perKey[k], vs...)
		}
	}
	for k, vs := range perKey {
		got := make([]bool, len(vs))
		for _, v := range vs {
			off := int(v - cfg.Start)
			if off >= len(vs) || got[off] {
				return fmt.Errorf("%w: key %s handed out %d twice or out of range (%d calls)",
					errStressViolation, ids[k], v, len(vs))
			}
			got[off] = true
		}
	}

	wantBlocks := (cfg.Keys + counters.CountersPerBlock - 1) / counters.CountersPerBlock
	if s.Bound != cfg.Keys || s.Blocks != wantBlocks {
		return fmt.Errorf("%w: %d keys in %d blocks, want %d in %d",
			errStressViolation, s.Bound, s.Blocks, cfg.Keys, wantBlocks)
	}
	if s.Total != uint64(cfg.Workers*cfg.Calls) {
		return fmt.Errorf("%w: %d increments, want %d", errStressViolation, s.Total, cfg.Workers*cfg.Calls)
	}
	return nil
}

// serveMetrics exposes the registry's collector on addr until stop is called.
func serveMetrics(addr string, c *counters.Counters, logger *zap.Logger) (stop func(), err error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewCollector(c))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.Listen: %w", err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", ln.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
