// Package common contains the capture data model shared by the ABCC SPI
// renderer, its readers and the capture simulator.
package common

import (
	"cmp"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.viam.com/rdk/logging"
)

// NewLogger returns a new logger that appends to the given writer.
func NewLogger(writer io.Writer, opts ...zap.Option) logging.Logger {
	logger := logging.NewBlankLogger("")
	logger.AddAppender(logging.ConsoleAppender{Writer: writer})
	return logger
}

// Min returns the min of x,y.
func Min[T cmp.Ordered](x, y T) T {
	if x < y {
		return x
	}
	return y
}

// Max returns the max of x,y.
func Max[T cmp.Ordered](x, y T) T {
	if x > y {
		return x
	}
	return y
}

var (
	// UseFixedTimestamp is for testing purposes only
	UseFixedTimestamp atomic.Bool

	IsCLI atomic.Bool
)

// Now returns the current time.Time
func Now() time.Time {
	if UseFixedTimestamp.Load() {
		return time.UnixMilli(1672527600000) // 2023-01-01 00:00
	}

	return time.Now()
}

// FixedClock is used to return fixed time
type FixedClock struct{}

func (c FixedClock) Now() time.Time {
	return Now()
}

func (c FixedClock) NewTicker(t time.Duration) *time.Ticker {
	return time.NewTicker(t)
}

// Error logs a message at the ERROR level. The returned
// error may be used to propagate upwards.
func Error(logger logging.Logger, isCLI bool, format string, v ...any) error {
	logger.Errorf(format, v...)
	err := fmt.Errorf(format, v...)
	if !isCLI {
		return err
	}
	return &ExitError{Code: 2, Cause: err}
}

// Abort logs a message at the "FATAL" level. The returned
// error may be used to propagate upwards and if running
// as a CLI, it may os.Exit.
func Abort(logger logging.Logger, isCLI bool, format string, v ...any) error {
	logger.Errorf("FATAL: "+format, v...)
	err := fmt.Errorf(format, v...)
	if !isCLI {
		return err
	}
	return &ExitError{Code: 2, Cause: err}
}

// ExitError is an error for exit codes.
type ExitError struct {
	Code  int
	Cause error
}

// Error returns the underlying error and cause.
func (e ExitError) Error() string {
	return fmt.Sprintf("exit code %d; cause=%s", e.Code, e.Cause)
}

// Unwrap returns the cause, if present.
func (e ExitError) Unwrap() error {
	return e.Cause
}
