package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"llmbridge/internal/bridge"
	"llmbridge/internal/catalog"
	"llmbridge/internal/config"
	"llmbridge/internal/daemon"
	"llmbridge/internal/httpapi"
	"llmbridge/internal/registry"
)

// buildRootCmd constructs the command tree.
func buildRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "llmbridge",
		Short:         "Native bridge for on-device model contexts and structured generation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LLMBRIDGE_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)
	}

	root.AddCommand(buildServeCmd(), buildAskCmd(), buildModelsCmd(), buildVersionCmd())
	return root
}

func buildServeCmd() *cobra.Command {
	var (
		addr      string
		modelsDir string
		cfgPath   string
		engine    string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP surface over the bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{}
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			// Flags win over file values; file values win over defaults.
			if cmd.Flags().Changed("addr") || cfg.Addr == "" {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("models-dir") || cfg.ModelsDir == "" {
				cfg.ModelsDir = modelsDir
			}
			if cmd.Flags().Changed("engine") || cfg.Engine == "" {
				cfg.Engine = engine
			}
			if cfg.LogLevel != "" && !cmd.Flags().Changed("log-level") {
				setLogLevel(cfg.LogLevel)
			}
			return runServe(cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envOr("LLMBRIDGE_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	cmd.Flags().StringVar(&modelsDir, "models-dir", "~/models/llm", "Directory to scan for *.gguf model files")
	cmd.Flags().StringVar(&cfgPath, "config", "", "Optional config file (.yaml/.json/.toml)")
	cmd.Flags().StringVar(&engine, "engine", "keyword", "Generation engine: keyword|llama")
	return cmd
}

func runServe(cfg config.Config) error {
	log := newLogger()

	eng, err := selectEngine(cfg.Engine)
	if err != nil {
		return err
	}
	reg := registry.New()
	b := bridge.New(reg, eng, log)
	svc := daemon.New(b, cfg.ModelsDir)

	httpapi.SetLogger(log)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins)

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(svc)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Str("engine", eng.Name()).Msg("llmbridge listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	reg.DestroyAll()
	return nil
}

func buildAskCmd() *cobra.Command {
	var maxTokens int
	cmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Classify one prompt through a throwaway context and print the JSON response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger().Level(zerolog.ErrorLevel)
			b := bridge.New(registry.New(), bridge.NewKeywordEngine(), log)
			f := bridge.NewFacade(b, log)
			if !f.LoadModel("(inline)", 0, 0) {
				return fmt.Errorf("load failed")
			}
			defer f.Cleanup()
			resp := f.Generate(cmd.Context(), args[0], maxTokens, 0, 0)
			fmt.Println(resp.Encode())
			return nil
		},
	}
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 128, "Token budget forwarded to the engine")
	return cmd
}

func buildModelsCmd() *cobra.Command {
	var modelsDir string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List *.gguf model files in the models directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := catalog.LoadDir(modelsDir)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Printf("%s\t%d MB\t%s\n", f.ID, f.SizeMB, f.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&modelsDir, "models-dir", "~/models/llm", "Directory to scan for *.gguf model files")
	return cmd
}

func buildVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bridge version string",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(bridge.Version)
		},
	}
}

func selectEngine(name string) (bridge.Engine, error) {
	switch name {
	case "", "keyword":
		return bridge.NewKeywordEngine(), nil
	case "llama":
		return bridge.NewLlamaEngine(), nil
	default:
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}

func setLogLevel(s string) {
	switch s {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
