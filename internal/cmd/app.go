package cmd

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/tabmerge/internal/config"
	"github.com/Iron-Ham/tabmerge/internal/errors"
	"github.com/Iron-Ham/tabmerge/internal/explorer"
	"github.com/Iron-Ham/tabmerge/internal/logging"
	"github.com/Iron-Ham/tabmerge/internal/newtab"
	"github.com/Iron-Ham/tabmerge/internal/orchestrator"
	"github.com/Iron-Ham/tabmerge/internal/output"
	"github.com/Iron-Ham/tabmerge/internal/shell"
)

// hostSession is everything a command needs from the desktop shell.
type hostSession interface {
	explorer.Surface
	explorer.Hierarchy
	newtab.Messenger
	orchestrator.Desktop
	orchestrator.Launcher
	Close() error
}

// Wrapper functions for the shell to allow testing
var (
	openSession = func(logger *logging.Logger) (hostSession, error) {
		s, err := shell.Open(logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	resolvePath = shell.FullPath
	watchSleep  func(time.Duration)
)

// app holds the per-invocation state shared by the commands.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	printer *output.Printer
	session hostSession
}

// newApp loads configuration, sets up logging and connects to the shell.
// The caller must Close the app on the same goroutine.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.NewExitError(errors.ExitUsage,
			errors.NewValidationError("invalid configuration").WithCause(err))
	}

	var logger *logging.Logger
	if cfg.Logging.File == "" {
		logger = logging.NewWriterLogger(cmd.ErrOrStderr(), cfg.Logging.Level)
	} else {
		logger, err = logging.NewLoggerWithRotation(cfg.Logging.File, cfg.Logging.Level, logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		})
		if err != nil {
			return nil, errors.NewExitError(errors.ExitUsage, err)
		}
	}
	logger = logger.WithRun(uuid.NewString()).With("command", cmd.Name())
	logger.Debug("configuration loaded", "config_file", viper.ConfigFileUsed())

	session, err := openSession(logger.WithPhase("shell"))
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		printer: output.New(cmd.OutOrStdout(), cfg.Output.Format, cfg.Output.Color),
		session: session,
	}, nil
}

// Close disconnects from the shell and flushes the log.
func (a *app) Close() {
	if err := a.session.Close(); err != nil {
		a.logger.Warn("failed to close shell session", "error", err)
	}
	_ = a.logger.Close()
}

// fail logs a command failure at the level its severity calls for and
// returns it unchanged.
func (a *app) fail(err error) error {
	severity := errors.GetSeverity(err)
	args := []any{"error", err, "severity", severity.String(), "retryable", errors.IsRetryable(err)}
	switch {
	case severity >= errors.SeverityError:
		a.logger.Error("command failed", args...)
	case severity == errors.SeverityWarning:
		a.logger.Warn("command failed", args...)
	default:
		a.logger.Info("command failed", args...)
	}
	return err
}

func (a *app) discover() explorer.DiscoverFunc {
	return explorer.NewEnumerator(a.session, a.logger.WithPhase("enumerate")).Discover
}

func (a *app) host() orchestrator.Host {
	discover := a.discover()
	watcher := newtab.New(discover, a.session, newtab.Options{
		Interval:    a.cfg.Watch.PollInterval(),
		Timeout:     a.cfg.Watch.Timeout(),
		CommandCode: uint16(a.cfg.Watch.CommandCode),
		Sleep:       watchSleep,
	}, a.logger.WithPhase("watch"))

	return orchestrator.Host{
		Discover:  discover,
		Hierarchy: a.session,
		Tabs:      watcher,
		Desktop:   a.session,
		Launcher:  a.session,
	}
}

func (a *app) tabHostOptions() orchestrator.TabHostOptions {
	return orchestrator.TabHostOptions{
		ClassName: a.cfg.TabHost.ClassName,
		MaxNodes:  a.cfg.TabHost.MaxNodes,
	}
}
