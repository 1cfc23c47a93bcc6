package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/manuelgantiva/vrx/internal/config"
	"github.com/manuelgantiva/vrx/internal/geo"
	"github.com/manuelgantiva/vrx/internal/logging"
	"github.com/manuelgantiva/vrx/internal/metrics"
	intOtel "github.com/manuelgantiva/vrx/internal/otel"
	"github.com/manuelgantiva/vrx/internal/transport"
	"github.com/manuelgantiva/vrx/internal/transport/memory"
	"github.com/manuelgantiva/vrx/internal/transport/simws"
	"github.com/manuelgantiva/vrx/internal/waypoint"
)

// Version can be set at build time via ldflags.
var (
	Version   string = "0.0.1"
	BuildDate string = "unknown"
)

const appName = "waypointd"

var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	SessionStartTime time.Time = time.Now()
)

func main() {
	cmd := "draw"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	if cmd == "version" {
		fmt.Printf("%s %s (built %s)\n", appName, Version, BuildDate)
		return
	}

	if err := run(cmd); err != nil {
		if Logger != nil {
			Logger.Error("Fatal error", "error", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(cmd string) error {
	if err := config.Load("."); err != nil {
		return err
	}

	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("create logs dir: %w", err)
	}

	if err := setupLogging(logsDir); err != nil {
		return err
	}
	defer shutdownLogging()

	switch cmd {
	case "draw":
		return drawCommand()
	case "length":
		return lengthCommand()
	default:
		return fmt.Errorf("unknown command %q (want draw, length or version)", cmd)
	}
}

// setupLogging wires the slog manager: session log file, optional OTel
// export and optional GELF shipping to Graylog.
func setupLogging(logsDir string) error {
	SlogManager = logging.NewSlogManager()

	logFile, err := os.OpenFile(
		logging.LogFilePath(logsDir, appName, SessionStartTime),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644,
	)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	otelCfg := config.GetOTelConfig()
	OTelProvider, err = intOtel.New(intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		LogWriter:    logFile,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	})
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}

	var extra []slog.Handler
	if config.GetBool("graylog.enabled") {
		gelfHandler, err := logging.GelfHandler(
			config.GetString("graylog.address"),
			config.GetString("logLevel"),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "graylog unavailable, continuing without it: %v\n", err)
		} else {
			extra = append(extra, gelfHandler)
		}
	}

	SlogManager.Setup(logFile, config.GetString("logLevel"), OTelProvider.LoggerProvider(), extra...)
	Logger = SlogManager.Logger()
	Logger.Info("Session started", "version", Version, "buildDate", BuildDate)
	return nil
}

func shutdownLogging() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := SlogManager.Flush(ctx); err != nil {
		Logger.Warn("Log flush failed", "error", err)
	}
	if err := OTelProvider.Shutdown(ctx); err != nil {
		Logger.Warn("OTel shutdown failed", "error", err)
	}
}

// drawCommand loads the configured course, connects to the simulator bus
// and draws one labeled marker per waypoint.
func drawCommand() error {
	course, err := waypoint.LoadCourse(viper.GetViper())
	if err != nil {
		return err
	}
	if len(course.Waypoints) == 0 {
		Logger.Warn("No waypoints configured, nothing to draw")
		return nil
	}
	course.Localize(geo.NewProjector())

	pub := connectPublisher()
	defer pub.Close()

	markers := waypoint.New(config.GetMarkersConfig().Namespace, pub, Logger)
	markers.Load(config.MarkersTree())
	markers.SetTopic(config.GetSimConfig().Topic)

	influx := setupInflux()
	if influx != nil {
		defer influx.Close()
	}

	start := time.Now()
	drawn, err := markers.DrawCourse(course)
	elapsed := time.Since(start)

	Logger.Info("Course drawn",
		"namespace", markers.Namespace(),
		"waypoints", len(course.Waypoints),
		"drawn", drawn,
		"elapsed", elapsed)

	if influx != nil {
		if werr := influx.RecordDraw(markers.Namespace(), drawn, elapsed); werr != nil {
			Logger.Warn("Telemetry write failed", "error", werr)
		}
	}
	return err
}

// lengthCommand prints the projected polyline length of the course.
func lengthCommand() error {
	course, err := waypoint.LoadCourse(viper.GetViper())
	if err != nil {
		return err
	}
	course.Localize(geo.NewProjector())

	length, err := course.Length()
	if err != nil {
		return err
	}
	fmt.Printf("%d waypoints, %.1f m\n", len(course.Waypoints), length)
	return nil
}

// connectPublisher dials the simulator bus. If the bus is unreachable,
// markers are recorded in memory so a draw still exercises the full
// pipeline and logs what it would have published.
func connectPublisher() transport.Publisher {
	simCfg := config.GetSimConfig()

	pub, err := simws.New(simws.Config{URL: simCfg.URL, Secret: simCfg.Secret}, Logger)
	if err == nil {
		if dialErr := pub.Dial(); dialErr == nil {
			Logger.Info("Connected to simulator bus", "url", simCfg.URL)
			return pub
		} else {
			err = dialErr
		}
	}

	Logger.Warn("Simulator bus unavailable, recording markers in memory",
		"url", simCfg.URL, "error", err)
	return memory.New()
}

// setupInflux returns a connected telemetry manager, or nil when influx
// is disabled or cannot even fall back to the backup file.
func setupInflux() *metrics.Manager {
	influxCfg := config.GetInfluxConfig()
	if !influxCfg.Enabled {
		return nil
	}

	zl := zerolog.New(os.Stderr).With().Timestamp().Str("component", "influx").Logger()
	backupPath := filepath.Join(config.GetString("logsDir"),
		fmt.Sprintf("%s.%s.lp.gz", appName, SessionStartTime.Format("20060102_150405")))

	mgr := metrics.NewManager(influxCfg, zl, backupPath)
	if err := mgr.Connect(); err != nil {
		Logger.Warn("Influx telemetry disabled", "error", err)
		return nil
	}
	return mgr
}
