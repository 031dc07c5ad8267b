package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"mixdown/internal/hwaccel"
	"mixdown/internal/logging"
	"mixdown/internal/project"
)

// ErrExportRunning is returned when an export is requested while another is
// in flight. One export runs at a time.
var ErrExportRunning = errors.New("an export is already running")

// State describes the supervisor's lifecycle position.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
	StateFailed    State = "failed"
)

// Result reports the outcome of an export run.
type Result struct {
	Success             bool
	Cancelled           bool
	Error               string
	Encoder             string
	HardwareAccelerated bool
	Elapsed             time.Duration
}

// progressPattern matches the engine's machine-readable processed-time
// marker (microseconds despite the name).
var progressPattern = regexp.MustCompile(`out_time_ms=(\d+)`)

// Exporter supervises engine processes: it builds the export command,
// streams progress, honors cancellation through the run context, and
// guarantees no partial output file survives a cancelled run.
type Exporter struct {
	binary   string
	detector *hwaccel.Detector
	exec     Executor
	logger   *slog.Logger

	mu    sync.Mutex
	state State
}

// Option configures the exporter.
type Option func(*Exporter)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(e *Exporter) {
		if exec != nil {
			e.exec = exec
		}
	}
}

// WithLogger attaches a logger for run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logging.NewComponentLogger(logger, "export")
		}
	}
}

// New constructs an exporter around the given engine binary and capability
// detector. An empty binary falls back to resolving "ffmpeg" from PATH.
func New(binary string, detector *hwaccel.Detector, opts ...Option) *Exporter {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	exporter := &Exporter{
		binary:   binary,
		detector: detector,
		exec:     commandExecutor{},
		logger:   logging.NewNop(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(exporter)
	}
	return exporter
}

// State returns the supervisor's current lifecycle state.
func (e *Exporter) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Exporter) begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateRunning {
		return ErrExportRunning
	}
	e.state = StateRunning
	return nil
}

func (e *Exporter) finish(state State) {
	e.mu.Lock()
	e.state = state
	e.mu.Unlock()
}

// Export runs the engine against the project and streams progress events to
// the optional callback as 0-100 percentages. Cancelling ctx terminates the
// engine process, deletes any partially written output file, and yields a
// cancelled (not failed) result. An engine that exits non-zero yields a
// failed result with the exit code in the message; only a process that
// cannot be launched at all returns an error.
func (e *Exporter) Export(ctx context.Context, p *project.Project, opts Options, progress func(float64)) (Result, error) {
	if err := e.begin(); err != nil {
		return Result{}, err
	}

	start := time.Now()

	// Resolved for reporting; BuildArgs consults the same memoized cache,
	// so the command and the result always agree.
	encoder := hwaccel.SoftwareEncoder
	hardware := false
	if opts.UseHardware {
		if family, ok := e.detector.Detect(ctx); ok {
			encoder = family.Encoder()
			hardware = true
		}
	}

	// The progress flags must precede the output path; the engine ignores
	// trailing options.
	args := BuildArgs(ctx, p, e.detector, opts)
	output := args[len(args)-1]
	args = append(args[:len(args)-1], "-progress", "pipe:1", "-nostats", output)

	totalMs := p.VideoDuration() * 1000.0
	if totalMs <= 0 {
		totalMs = 1.0
	}

	e.logger.Info("export started", logging.Args(
		logging.String("output", opts.OutputPath),
		logging.String("encoder", encoder),
		logging.Bool("hardware", hardware),
	)...)

	runErr := e.exec.Run(ctx, e.binary, args, func(line string) {
		match := progressPattern.FindStringSubmatch(line)
		if match == nil {
			return
		}
		position, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return
		}
		if progress != nil {
			progress(min(position/totalMs*100.0, 100.0))
		}
	})

	result := Result{
		Encoder:             encoder,
		HardwareAccelerated: hardware,
		Elapsed:             time.Since(start),
	}

	if ctx.Err() != nil {
		// A truncated file under the requested name is worse than no file.
		removeIfExists(opts.OutputPath)
		result.Cancelled = true
		e.logger.Info("export cancelled", logging.Args(logging.Duration("elapsed", result.Elapsed))...)
		e.finish(StateCancelled)
		return result, nil
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.Error = fmt.Sprintf("engine exited with code %d", exitErr.ExitCode())
			e.logger.Error("export failed", logging.Args(logging.String("detail", result.Error))...)
			e.finish(StateFailed)
			return result, nil
		}
		e.finish(StateFailed)
		return result, fmt.Errorf("launch engine: %w", runErr)
	}

	result.Success = true
	e.logger.Info("export completed", logging.Args(logging.Duration("elapsed", result.Elapsed))...)
	e.finish(StateCompleted)
	return result, nil
}

func removeIfExists(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
}
