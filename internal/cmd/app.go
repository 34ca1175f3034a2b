package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/haiku/internal/config"
	"github.com/harrison/haiku/internal/detector"
	"github.com/harrison/haiku/internal/display"
	"github.com/harrison/haiku/internal/history"
	"github.com/harrison/haiku/internal/logger"
	"github.com/harrison/haiku/internal/models"
)

// ErrHistoryDisabled is returned by commands that need the history database
// when it has been turned off.
var ErrHistoryDisabled = errors.New("history is disabled (enable history.enabled or drop --no-history)")

// Logger is the logging surface shared by console and file loggers.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogScan(outcome models.ScanOutcome)
}

// multiLogger fans every call out to several loggers.
type multiLogger []Logger

func (m multiLogger) LogDebug(message string) {
	for _, l := range m {
		l.LogDebug(message)
	}
}

func (m multiLogger) LogInfo(message string) {
	for _, l := range m {
		l.LogInfo(message)
	}
}

func (m multiLogger) LogWarn(message string) {
	for _, l := range m {
		l.LogWarn(message)
	}
}

func (m multiLogger) LogError(message string) {
	for _, l := range m {
		l.LogError(message)
	}
}

func (m multiLogger) LogScan(outcome models.ScanOutcome) {
	for _, l := range m {
		l.LogScan(outcome)
	}
}

// app holds everything a command needs after configuration is resolved.
type app struct {
	cfg    *config.Config
	home   string
	log    Logger
	store  *history.Store // nil when history is disabled
	fileLg *logger.FileLogger
}

// loadApp resolves configuration (file, then flags), then opens loggers and
// the history store. Callers must Close the returned app.
func loadApp(cmd *cobra.Command) (*app, error) {
	home, err := config.GetHaikuHome()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	var cfg *config.Config
	configPath, _ := flags.GetString("config")
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(home)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var logLevel, output *string
	var maxConcurrency *int
	var noHistory *bool
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		logLevel = &v
	}
	if flags.Changed("output") {
		v, _ := flags.GetString("output")
		output = &v
	}
	if asJSON, _ := flags.GetBool("json"); asJSON {
		v := config.OutputJSON
		output = &v
	}
	if flags.Changed("max-concurrency") {
		v, _ := flags.GetInt("max-concurrency")
		maxConcurrency = &v
	}
	if flags.Changed("no-history") {
		v, _ := flags.GetBool("no-history")
		noHistory = &v
	}
	cfg.MergeWithFlags(logLevel, output, maxConcurrency, noHistory)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &app{cfg: cfg, home: home}
	loggers := multiLogger{logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)}

	if cfg.LogDir != "" {
		fl, err := logger.NewFileLoggerWithDirAndLevel(a.resolve(cfg.LogDir), cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("open run log: %w", err)
		}
		a.fileLg = fl
		loggers = append(loggers, fl)
	}
	a.log = loggers

	if cfg.History.Enabled {
		store, err := history.NewStore(a.resolve(cfg.History.DBPath))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open history: %w", err)
		}
		a.store = store
	}

	return a, nil
}

// resolve makes a configured path absolute relative to the haiku home.
func (a *app) resolve(path string) string {
	if path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.home, path)
}

// Close releases the history store and run log.
func (a *app) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	if a.fileLg != nil {
		errs = append(errs, a.fileLg.Close())
		a.fileLg = nil
	}
	return errors.Join(errs...)
}

// detector builds a Detector wired to this app's logger and history.
func (a *app) detector() *detector.Detector {
	opts := []detector.Option{
		detector.WithLogger(a.log),
		detector.WithMaxTextLength(a.cfg.MaxTextLength),
		detector.WithMaxConcurrency(a.cfg.MaxConcurrency),
	}
	if a.store != nil {
		opts = append(opts, detector.WithRecorder(a.store))
	}
	return detector.New(opts...)
}

// tally returns the running "haikus detected" count, or nil without history.
func (a *app) tally(ctx context.Context) (*int, error) {
	if a.store == nil {
		return nil, nil
	}
	n, err := a.store.Tally(ctx, a.cfg.History.InitialCount)
	if err != nil {
		return nil, fmt.Errorf("read tally: %w", err)
	}
	return &n, nil
}

func (a *app) renderer(cmd *cobra.Command) *display.Renderer {
	return display.NewRenderer(cmd.OutOrStdout(), a.cfg.Output)
}

// warnings renders warnings on stderr so they never mix with JSON on stdout.
func (a *app) warnings(cmd *cobra.Command) *display.Renderer {
	return display.NewRenderer(cmd.ErrOrStderr(), display.FormatText)
}
