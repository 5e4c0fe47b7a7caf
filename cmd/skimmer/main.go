package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	cli "github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	_ "go.uber.org/automaxprocs"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "skimmer",
		Usage:   "chat moderation daemon (skims the scum off the stream)",
		Version: versioninfo.Short(),
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (eg: warn, info, debug)",
			EnvVars: []string{"SKIMMER_LOG_LEVEL", "GO_LOG_LEVEL", "LOG_LEVEL"},
		},
	}

	app.Commands = []*cli.Command{
		runCmd,
	}

	return app.Run(args)
}

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "run the moderation service",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "chat-host",
			Usage:   "websocket scheme, hostname, and port of the chat server",
			Value:   "wss://irc-ws.chat.twitch.tv:443",
			EnvVars: []string{"SKIMMER_CHAT_HOST"},
		},
		&cli.StringFlag{
			Name:    "chat-nick",
			Usage:   "login of the bot account",
			EnvVars: []string{"SKIMMER_CHAT_NICK"},
		},
		&cli.StringFlag{
			Name:    "chat-token",
			Usage:   "OAuth token for the bot account, with the oauth: prefix",
			EnvVars: []string{"SKIMMER_CHAT_TOKEN"},
		},
		&cli.StringSliceFlag{
			Name:    "channel",
			Usage:   "channel to join and moderate (can be repeated)",
			EnvVars: []string{"SKIMMER_CHANNELS"},
		},
		&cli.StringFlag{
			Name:    "database-url",
			Usage:   "database connection string; defaults to sqlite under the XDG data dir",
			EnvVars: []string{"DATABASE_URL"},
		},
		&cli.IntFlag{
			Name:    "max-db-connections",
			Usage:   "limit on size of database connection pool",
			Value:   40,
			EnvVars: []string{"MAX_DB_CONNECTIONS"},
		},
		&cli.StringFlag{
			Name:    "redis-url",
			Usage:   "redis connection URL for warning, rate, and cache state; in-process fallback when empty",
			EnvVars: []string{"SKIMMER_REDIS_URL", "REDIS_URL"},
		},
		&cli.StringFlag{
			Name:    "sets-json-path",
			Usage:   "file path of JSON file containing shared string sets",
			EnvVars: []string{"SKIMMER_SETS_JSON_PATH"},
		},
		&cli.StringFlag{
			Name:    "admin-bind",
			Usage:   "IP or address, and port, to listen on for the admin config API; disabled when empty",
			EnvVars: []string{"SKIMMER_ADMIN_BIND"},
		},
		&cli.StringFlag{
			Name:    "admin-token",
			Usage:   "bearer token for the admin config API",
			EnvVars: []string{"SKIMMER_ADMIN_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "IP or address, and port, to listen on for metrics APIs",
			Value:   ":3989",
			EnvVars: []string{"SKIMMER_METRICS_LISTEN"},
		},
		&cli.StringFlag{
			Name:    "slack-webhook-url",
			Usage:   "webhook URL for moderation event notifications",
			EnvVars: []string{"SKIMMER_SLACK_WEBHOOK_URL", "SLACK_WEBHOOK_URL"},
		},
		&cli.IntFlag{
			Name:    "parallelism",
			Usage:   "number of messages to process in parallel",
			Value:   8,
			EnvVars: []string{"SKIMMER_PARALLELISM"},
		},
		&cli.BoolFlag{
			Name:    "respond-in-chat",
			Usage:   "send category response templates back to the channel",
			EnvVars: []string{"SKIMMER_RESPOND_IN_CHAT"},
		},
		&cli.Int64Flag{
			Name:    "chat-sends-per-30s",
			Usage:   "cap on outgoing chat lines per 30 second window",
			Value:   20,
			EnvVars: []string{"SKIMMER_CHAT_SENDS_PER_30S"},
		},
	},
	Action: func(cctx *cli.Context) error {
		logger := configLogger(cctx, os.Stdout)

		// Enable OTLP HTTP exporter
		// For relevant environment variables:
		// https://pkg.go.dev/go.opentelemetry.io/otel/exporters/otlp/otlptrace#readme-environment-variables
		// At a minimum, you need to set
		// OTEL_EXPORTER_OTLP_ENDPOINT=http://localhost:4318
		if ep := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); ep != "" {
			slog.Info("setting up trace exporter", "endpoint", ep)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			exp, err := otlptracehttp.New(ctx)
			if err != nil {
				log.Fatal("failed to create trace exporter", "error", err)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := exp.Shutdown(ctx); err != nil {
					slog.Error("failed to shutdown trace exporter", "error", err)
				}
			}()

			tp := tracesdk.NewTracerProvider(
				tracesdk.WithBatcher(exp),
				tracesdk.WithResource(resource.NewWithAttributes(
					semconv.SchemaURL,
					semconv.ServiceNameKey.String("skimmer"),
					attribute.String("env", os.Getenv("ENVIRONMENT")),         // DataDog
					attribute.String("environment", os.Getenv("ENVIRONMENT")), // Others
					attribute.Int64("ID", 1),
				)),
			)
			otel.SetTracerProvider(tp)
		}

		// Trap SIGINT to trigger a shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		dburl := cctx.String("database-url")
		if dburl == "" {
			// DataFile creates the parent directories on the way
			path, err := xdg.DataFile("skimmer/skimmer.db")
			if err != nil {
				return fmt.Errorf("resolving default database path: %w", err)
			}
			dburl = "sqlite://" + path
		}

		srv, err := NewServer(Config{
			Logger:           logger,
			DatabaseURL:      dburl,
			MaxDBConnections: cctx.Int("max-db-connections"),
			RedisURL:         cctx.String("redis-url"),
			TwitchHost:       cctx.String("chat-host"),
			TwitchNick:       cctx.String("chat-nick"),
			TwitchToken:      cctx.String("chat-token"),
			Channels:         cctx.StringSlice("channel"),
			Parallelism:      cctx.Int("parallelism"),
			AdminBind:        cctx.String("admin-bind"),
			AdminToken:       cctx.String("admin-token"),
			SlackWebhookURL:  cctx.String("slack-webhook-url"),
			SetsFileJSON:     cctx.String("sets-json-path"),
			RespondInChat:    cctx.Bool("respond-in-chat"),
			ChatSendsPer30s:  cctx.Int64("chat-sends-per-30s"),
		})
		if err != nil {
			return fmt.Errorf("failed to construct server: %w", err)
		}

		go func() {
			if err := srv.RunMetrics(cctx.String("metrics-listen")); err != nil {
				slog.Error("failed to start metrics endpoint", "error", err)
				panic(fmt.Errorf("failed to start metrics endpoint: %w", err))
			}
		}()

		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("failed to run moderation service: %w", err)
		}
		logger.Info("shutdown complete")
		return nil
	},
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}
