// Package cli
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Command line interface for crsync.
//
// Command structure:
//
//	crsync
//	├── run       start a pool, push a synthetic load through it, report
//	├── contend   N threads incrementing one counter under one Mutex
//	├── probe     print the platform family and resolved entry points
//	└── --config, -c  YAML or JSON config file
//
// run optionally serves /metrics while it works and, with --hold, keeps
// serving until SIGINT or SIGTERM.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/momentics/crsync/api"
	"github.com/momentics/crsync/control"
	"github.com/momentics/crsync/facade"
	"github.com/momentics/crsync/internal/concurrency"
	"github.com/momentics/crsync/internal/platform"
	"github.com/momentics/crsync/internal/symbols"
)

type rootOptions struct {
	configFile string
}

// BuildCLI returns the root command.
func BuildCLI() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "crsync",
		Short:         "crsync: portable threads, locks and a FIFO worker pool",
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file path (yaml or json)")

	rootCmd.AddCommand(buildRunCommand(opts))
	rootCmd.AddCommand(buildContendCommand(opts))
	rootCmd.AddCommand(buildProbeCommand())
	return rootCmd
}

func (o *rootOptions) load() (*control.Config, error) {
	if o.configFile == "" {
		return control.DefaultConfig(), nil
	}
	cfg, err := control.LoadConfig(o.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

type runOptions struct {
	workers     int
	jobs        int
	jobDuration time.Duration
	metricsAddr string
	hold        bool
}

func buildRunCommand(root *rootOptions) *cobra.Command {
	ro := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start a worker pool and push a synthetic load through it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				cfg.Pool.Workers = ro.workers
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Metrics.Enabled = ro.metricsAddr != ""
				cfg.Metrics.Addr = ro.metricsAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runLoad(ctx, cfg, ro, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().IntVarP(&ro.workers, "workers", "w", 4, "worker threads (overrides config)")
	cmd.Flags().IntVarP(&ro.jobs, "jobs", "n", 1000, "jobs to enqueue")
	cmd.Flags().DurationVar(&ro.jobDuration, "job-duration", time.Millisecond, "simulated work per job")
	cmd.Flags().StringVar(&ro.metricsAddr, "metrics-addr", "", "serve /metrics on this address (overrides config)")
	cmd.Flags().BoolVar(&ro.hold, "hold", false, "keep the pool and metrics endpoint up until interrupted")
	return cmd
}

func runLoad(ctx context.Context, cfg *control.Config, ro *runOptions, out, errOut io.Writer) error {
	logger, err := control.NewLogger(cfg.Log, errOut)
	if err != nil {
		return err
	}
	rt, err := facade.New(cfg, facade.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := rt.Start(); err != nil {
		if !errors.Is(err, concurrency.ErrPartialStartup) {
			return err
		}
		logger.Warn("continuing with fewer workers", "err", err)
	}
	defer rt.Shutdown()

	if cfg.Metrics.Enabled {
		srv, addr, err := serveMetrics(cfg.Metrics.Addr, rt.MetricsHandler(), logger)
		if err != nil {
			return err
		}
		defer srv.Close()
		fmt.Fprintf(out, "metrics: http://%s/metrics\n", addr)
	}

	var completed atomic.Int64
	d := ro.jobDuration
	start := time.Now()
	accepted, err := submitLoad(rt.Executor(), ro.jobs, func() {
		if d > 0 {
			time.Sleep(d)
		}
		completed.Add(1)
	})
	if err != nil {
		logger.Error("load submission stopped", "accepted", accepted, "err", err)
	}
	workers := rt.Stats().Workers
	if err := rt.Shutdown(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(out, "workers=%d accepted=%d completed=%d elapsed=%s\n",
		workers, accepted, completed.Load(), elapsed.Round(time.Microsecond))

	if ro.hold {
		fmt.Fprintln(out, "holding; interrupt to exit")
		<-ctx.Done()
	}
	return err
}

// submitLoad submits n copies of work and stops at the first rejection.
func submitLoad(exec api.Executor, n int, work func()) (int, error) {
	for i := 0; i < n; i++ {
		if err := exec.Submit(work); err != nil {
			return i, fmt.Errorf("submit %d: %w", i, err)
		}
	}
	return n, nil
}

func serveMetrics(addr string, h http.Handler, logger *slog.Logger) (*http.Server, string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", fmt.Errorf("metrics listen: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "err", err)
		}
	}()
	return srv, ln.Addr().String(), nil
}

type contendOptions struct {
	threads    int
	iterations int
}

func buildContendCommand(root *rootOptions) *cobra.Command {
	co := &contendOptions{}
	cmd := &cobra.Command{
		Use:   "contend",
		Short: "Increment one counter from many threads under one Mutex",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			logger, err := control.NewLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			sp := concurrency.NewSpawner(
				concurrency.WithMaxThreads(cfg.Pool.MaxThreads),
				concurrency.WithSpawnerLogger(logger),
			)
			start := time.Now()
			got, err := contend(sp, co.threads, co.iterations)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "threads=%d iterations=%d counter=%d elapsed=%s\n",
				co.threads, co.iterations, got, time.Since(start).Round(time.Microsecond))
			return nil
		},
	}
	cmd.Flags().IntVarP(&co.threads, "threads", "t", 2, "contending threads")
	cmd.Flags().IntVarP(&co.iterations, "iterations", "i", 100000, "increments per thread")
	return cmd
}

// contend runs threads*iterations locked increments and returns the total.
// The result differs from threads*iterations only if mutual exclusion broke.
func contend(sp *concurrency.Spawner, threads, iterations int) (int, error) {
	if threads <= 0 || iterations < 0 {
		return 0, fmt.Errorf("threads must be positive and iterations non-negative")
	}
	var (
		mu      concurrency.Mutex
		counter int
		ready   sync.WaitGroup
		gate    = make(chan struct{})
	)
	ts := make([]*concurrency.Thread, 0, threads)
	for i := 0; i < threads; i++ {
		ready.Add(1)
		t := sp.Spawn(func() {
			ready.Done()
			<-gate
			for j := 0; j < iterations; j++ {
				mu.Lock()
				counter++
				mu.Unlock()
			}
		}, concurrency.WithName(fmt.Sprintf("contend-%d", i)))
		if !t.OK() {
			ready.Done()
			close(gate)
			for _, started := range ts {
				started.Join()
			}
			return 0, fmt.Errorf("thread %d could not be created", i)
		}
		ts = append(ts, t)
	}
	ready.Wait()
	close(gate)
	for _, t := range ts {
		t.Join()
	}
	mu.Lock()
	defer mu.Unlock()
	return counter, nil
}

type probeReport struct {
	Family          string            `yaml:"family" json:"family"`
	NativeBroadcast bool              `yaml:"native_broadcast" json:"native_broadcast"`
	OS              string            `yaml:"os" json:"os"`
	Arch            string            `yaml:"arch" json:"arch"`
	CPUs            int               `yaml:"cpus" json:"cpus"`
	Features        []string          `yaml:"features" json:"features"`
	Symbols         map[string]string `yaml:"symbols" json:"symbols"`
	Ready           bool              `yaml:"ready" json:"ready"`
}

func buildProbeCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Print the native primitive family and resolved entry points",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeProbe(cmd.OutOrStdout(), format, symbols.New())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}

func writeProbe(w io.Writer, format string, r *symbols.Resolver) error {
	info := platform.Probe()
	tbl := r.Table()
	rep := probeReport{
		Family:          info.Family.String(),
		NativeBroadcast: info.NativeBroadcast,
		OS:              info.OS,
		Arch:            info.Arch,
		CPUs:            info.CPUs,
		Features:        info.Features,
		Symbols:         control.SymbolReport(r),
		Ready:           tbl.Ready(),
	}
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
