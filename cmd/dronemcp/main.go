// Command dronemcp runs the dronemcp MCP server: a natural-language and
// typed-tool control plane for a fleet of drones, backed by a REST
// drone-control API.
//
// It communicates over stdio using JSON-RPC 2.0 (MCP protocol).
//
// Optional environment variables:
//
//	DRONEMCP_BACKEND_URL   - drone backend base URL (default: http://localhost:8000)
//	DRONEMCP_LOG_LEVEL     - log level: debug, info, warn, error (default: info)
//	DRONEMCP_CONFIG        - path to a dronemcp.toml config file
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/emergent-company/dronemcp/internal/backend"
	"github.com/emergent-company/dronemcp/internal/confidence"
	"github.com/emergent-company/dronemcp/internal/config"
	"github.com/emergent-company/dronemcp/internal/content"
	"github.com/emergent-company/dronemcp/internal/drone"
	"github.com/emergent-company/dronemcp/internal/logging"
	"github.com/emergent-company/dronemcp/internal/mcp"
	"github.com/emergent-company/dronemcp/internal/nlp"
	"github.com/emergent-company/dronemcp/internal/patterns"
	"github.com/emergent-company/dronemcp/internal/scheduler"
	"github.com/emergent-company/dronemcp/internal/tools"
	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

var configPath string

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dronemcp: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dronemcp",
		Short: "MCP control plane for a drone fleet",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to dronemcp.toml (default: search ./dronemcp.toml, then ~/.config/dronemcp/)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newValidatePatternsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dronemcp version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(Version)
			return nil
		},
	}
}

func newValidatePatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-patterns",
		Short: "Validate the built-in action/parameter pattern library and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, errs := patterns.Load(patterns.BuiltinActions(), patterns.BuiltinParameters())
			if errs != nil {
				for _, e := range errs {
					fmt.Fprintln(os.Stderr, e.Error())
				}
				return fmt.Errorf("%d validation error(s)", len(errs))
			}
			fmt.Printf("ok: %d actions, all patterns compiled\n", len(lib.GetActionPatterns()))
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.Log.Level)
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	ringHandler := logging.NewRingBufferHandler(jsonHandler, 500)
	logger := slog.New(ringHandler)

	version := cfg.Server.Version
	if Version != "dev" {
		version = Version
	}

	logger.Info("starting dronemcp", "version", version, "backend_url", cfg.Backend.URL, "transport", cfg.Transport.Mode)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Watch.Enabled {
		watchPath := configPath
		if watchPath == "" {
			watchPath = "dronemcp.toml"
		}
		go func() {
			if err := config.WatchForChanges(ctx, watchPath, true, logger); err != nil {
				logger.Warn("config watcher exited", "error", err)
			}
		}()
	}

	backendClient := backend.New(backend.Config{
		BaseURL: cfg.Backend.URL,
		Timeout: time.Duration(cfg.Backend.TimeoutMs) * time.Millisecond,
	}, logger)

	svc := drone.NewService(backendClient, time.Duration(cfg.Backend.StatusCacheTTLMs)*time.Millisecond, logger)

	sched := scheduler.NewScheduler(logger)
	sweepInterval := time.Duration(cfg.Backend.StatusCacheTTLMs) * time.Millisecond
	if sweepInterval <= 0 {
		sweepInterval = drone.DefaultCacheTTL
	}
	sched.AddJob(drone.NewCacheSweepJob(svc), sweepInterval)
	if cfg.Transport.Mode == "http" {
		sched.AddJob(drone.NewHealthPollJob(svc), 30*time.Second)
	}
	sched.Start(ctx)
	defer sched.Stop()

	lib := patterns.LoadDefault()
	tokenizer := nlp.NewDefaultTokenizer()
	engine := nlp.NewEngine(lib, tokenizer, logger)
	evaluator := confidence.NewEvaluator(lib)

	registry := mcp.NewRegistry()
	tools.RegisterControlTools(registry, svc)
	tools.RegisterQueryTools(registry, svc)
	tools.RegisterNLTool(registry, engine, evaluator, tokenizer, svc, cfg.Backend.NLPConfidenceThreshold)
	tools.RegisterBatchTool(registry, svc, engine)

	registry.RegisterPrompt(&content.GuidePrompt{})

	registry.RegisterResource(&content.AvailableDronesResource{Status: svc})
	registry.RegisterResource(&content.DroneStatusResource{Status: svc})
	registry.RegisterResource(&content.SystemStatusResource{Status: svc})
	registry.RegisterResource(&content.SystemLogsResource{Logs: ringHandler})

	server := mcp.NewServer(registry, mcp.ServerInfo{
		Name:    cfg.Server.Name,
		Version: version,
	}, logger)

	return server.Run(ctx)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
