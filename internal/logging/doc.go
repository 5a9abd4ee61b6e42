// Package logging provides structured logging for tabmerge runs.
//
// Every log line is a JSON object produced by log/slog. A single CLI
// invocation creates one root [Logger], tags it with a run ID, and hands
// child loggers (tagged with a phase or window) to the components it drives.
//
// # Destinations
//
// By default logs go to stderr. When logging.file is configured the logger
// appends to that file through a [RotatingWriter], which keeps at most
// logging.max_backups rotated copies of logging.max_size_mb each:
//
//	logger, err := logging.NewLoggerWithRotation(path, "DEBUG", logging.RotationConfig{
//	    MaxSizeMB:  10,
//	    MaxBackups: 3,
//	})
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	log := logger.WithRun(runID).WithPhase("discover")
//	log.Warn("skipping window", "index", 2, "error", err)
//
// Components that do not care about output take [NopLogger] in tests.
package logging
