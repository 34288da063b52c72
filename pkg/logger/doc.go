// Package logger builds the process-wide structured logger.
//
// Console output goes to stderr (text by default, JSON when configured),
// keeping stdout free for command output and dry-run previews. A log file
// can be attached for a persistent JSON record of every run, and a Sentry
// DSN can be attached to forward warnings and errors. All destinations
// receive the same records through a fan-out handler.
//
// Context extractors inject request-scoped attributes at log time; the
// campaign run ID travels this way so every record of a run carries it
// without each call site repeating it.
//
//	log, closeLog, err := logger.New(logger.Options{
//		Level: "debug",
//		File:  "herald.log",
//	})
//	if err != nil {
//		return err
//	}
//	defer closeLog()
package logger
