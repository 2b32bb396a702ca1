package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HaliteForager/internal/bot"
	"github.com/mitchelldurbincs/HaliteForager/internal/config"
	"github.com/mitchelldurbincs/HaliteForager/internal/protocol"
	"github.com/mitchelldurbincs/HaliteForager/internal/strategy"
	"github.com/mitchelldurbincs/HaliteForager/internal/trace"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment config to merge (forager.<env>.yaml)")
	logDir := flag.String("log-dir", "", "Directory for the per-player log file (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	traceEnabled := flag.Bool("trace", false, "Record a compressed decision trace")
	printConfig := flag.Bool("print-config", false, "Print the effective config as YAML and exit")
	watchConfig := flag.Bool("watch-config", false, "Reload strategy parameters when the config file changes")
	flag.Parse()

	// stdout belongs to the engine; log to stderr until the player id is known.
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	if *logDir != "" {
		config.Set("bot.log_dir", *logDir)
	}
	if *logLevel != "" {
		config.Set("bot.log_level", *logLevel)
	}
	if *traceEnabled {
		config.Set("trace.enabled", true)
	}

	cfg := config.Get()
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if *printConfig {
		if err := config.Dump(os.Stdout, cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to print config")
		}
		return
	}

	name := cfg.Bot.Name
	if flag.NArg() > 0 {
		name = flag.Arg(0)
	}

	if err := run(cfg, name, *watchConfig); err != nil {
		log.Fatal().Err(err).Msg("Bot stopped with error")
	}
}

func run(cfg *config.Config, name string, watch bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn := protocol.NewConn(os.Stdin, os.Stdout, log.Logger)
	g, err := conn.ReadInit()
	if err != nil {
		return fmt.Errorf("handshake: %w", err)
	}

	logFile, err := setupLogging(cfg.Bot, g.MyID)
	if err != nil {
		return err
	}
	defer logFile.Close()
	conn.SetLogger(log.Logger)

	session := uuid.NewString()
	log.Info().
		Str("session", session).
		Str("name", name).
		Int("player_id", g.MyID).
		Int("players", len(g.Players)).
		Int("width", g.Map.Width()).
		Int("height", g.Map.Height()).
		Int64("seed", g.Constants.GameSeed).
		Msg("Starting bot")

	orch := strategy.NewOrchestrator(strategy.ParamsFromConfig(cfg.Strategy), strategy.NewTracker(), log.Logger)
	b := bot.New(conn, g, orch, log.Logger)

	if cfg.Trace.Enabled {
		rec := trace.NewRecorder(cfg.Trace.Dir, session)
		defer func() {
			if err := rec.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close decision trace")
			}
		}()
		b.WithTrace(session, rec)
		log.Info().Str("path", rec.Path()).Msg("Decision trace enabled")
	}

	if watch {
		config.WatchConfig(func(c *config.Config) {
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config file changed")
			b.UpdateParams(strategy.ParamsFromConfig(c.Strategy))
		})
	}

	if err := b.Ready(name); err != nil {
		return err
	}
	return b.Run(ctx)
}

// setupLogging points the global logger at <log_dir>/forager-<id>.log.
// The file is returned so the caller can close it.
func setupLogging(bc config.BotConfig, playerID int) (*os.File, error) {
	var level zerolog.Level
	switch bc.LogLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if err := os.MkdirAll(bc.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(bc.LogDir, fmt.Sprintf("forager-%d.log", playerID))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	if os.Getenv("APP_ENV") == "production" || bc.LogFormat == "json" {
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        f,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
	return f, nil
}
