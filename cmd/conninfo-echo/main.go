// conninfo-echo answers every request with the connection information the
// resolver derived for it. Put it behind a reverse proxy to check what the
// proxy forwards.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/jessevdk/go-flags"
	"github.com/logrusorgru/aurora/v3"
	"github.com/mattn/go-isatty"
	prom "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/abczzz13/conninfo"
	conninfoprom "github.com/abczzz13/conninfo/prometheus"
)

var opts struct {
	ListenAddr  string `short:"a" long:"addr" description:"Listen address eg 127.0.0.1:8080" default:":8080"`
	MetricsAddr string `short:"m" long:"metrics-addr" description:"Serve /metrics on a separate listener instead of the main one"`
	DefaultHost string `long:"default-host" description:"Host reported when the request names none" default:"localhost:8080"`
	Secure      bool   `short:"s" long:"secure" description:"Report https when the request carries no scheme"`
	JSON        bool   `short:"j" long:"json" description:"Answer with JSON instead of text"`
	Verbose     bool   `short:"v" long:"verbose" description:"Log at debug level"`
	LogFile     string `long:"log-file" description:"Write logs to a rotated file instead of stderr" default:"console"`
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	log := newLogger(opts.Verbose, opts.LogFile)

	if err := run(log); err != nil {
		log.Error(err, "Shutting down")
		os.Exit(1)
	}
}

func newLogger(verbose bool, logPath string) logr.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeCaller = nil

	var sink zapcore.WriteSyncer
	if logPath == "" || logPath == "console" {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		sink = zapcore.Lock(os.Stderr)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.ToSlash(logPath),
			MaxSize:    5, // MB
			MaxBackups: 10,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), sink, level)
	return zapr.NewLogger(zap.New(core))
}

func run(log logr.Logger) error {
	registry := prom.NewRegistry()

	resolver, err := conninfo.New(
		conninfo.WithDefaultHost(opts.DefaultHost),
		conninfo.WithSecure(opts.Secure),
		conninfo.WithLogger(slog.New(logr.ToSlogHandler(log.WithName("conninfo")))),
		conninfoprom.WithRegisterer(registry),
	)
	if err != nil {
		return err
	}

	var rend renderer
	if opts.JSON {
		rend = jsonRenderer{}
	} else {
		rend = textRenderer{}
	}

	console := newConsole(os.Stdout, aurora.NewAurora(isatty.IsTerminal(os.Stdout.Fd())))

	srv := &server{
		resolver: resolver,
		registry: registry,
		render:   rend,
		console:  console,
		log:      log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	servers := []*http.Server{{
		Addr:              opts.ListenAddr,
		Handler:           srv.router(opts.MetricsAddr == ""),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if opts.MetricsAddr != "" {
		servers = append(servers, &http.Server{
			Addr:              opts.MetricsAddr,
			Handler:           srv.metricsRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	errs := make(chan error, len(servers))
	for _, s := range servers {
		log.Info("Listening", "addr", s.Addr)
		go func() {
			if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}()
	}

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info("Signal received, draining")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var shutdownErr error
	for _, s := range servers {
		shutdownErr = errors.Join(shutdownErr, s.Shutdown(shutdownCtx))
	}
	return shutdownErr
}
