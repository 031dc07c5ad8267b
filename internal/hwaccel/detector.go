package hwaccel

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"mixdown/internal/logging"
)

// Executor abstracts engine invocation for testability.
type Executor interface {
	// Output runs the engine and captures combined stdout output.
	Output(ctx context.Context, binary string, args ...string) ([]byte, error)
	// Run runs the engine, discarding output; a nil error means success.
	Run(ctx context.Context, binary string, args ...string) error
}

// Info summarizes the resolved capability for display.
type Info struct {
	Available bool
	Family    Family
	Encoder   string
}

// Detector probes the host for a usable hardware encoder and memoizes the
// result for the process lifetime. Failure of every probe is the normal
// fallback state, not an error; callers needing a fresh probe must start a
// new process.
type Detector struct {
	binary string
	exec   Executor
	logger *slog.Logger

	mu        sync.Mutex
	checked   bool
	family    Family
	available bool
}

// Option configures the detector.
type Option func(*Detector)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(d *Detector) {
		if exec != nil {
			d.exec = exec
		}
	}
}

// WithLogger attaches a logger for probe diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logging.NewComponentLogger(logger, "hwaccel")
		}
	}
}

// NewDetector constructs a detector around the given engine binary. An empty
// binary falls back to resolving "ffmpeg" from PATH.
func NewDetector(binary string, opts ...Option) *Detector {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	detector := &Detector{
		binary: binary,
		exec:   commandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(detector)
	}
	return detector
}

// Detect returns the resolved hardware family. The first call runs one
// detection pass; subsequent calls return the memoized result. The boolean
// is false when no hardware encoder is usable.
func (d *Detector) Detect(ctx context.Context) (Family, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.checked {
		return d.family, d.available
	}
	d.checked = true

	output, err := d.exec.Output(ctx, d.binary, "-hide_banner", "-encoders")
	if err != nil {
		d.logger.Debug("encoder list unavailable", logging.Args(logging.Error(err))...)
		return "", false
	}
	advertised := string(output)

	for _, family := range probeOrder {
		if !strings.Contains(advertised, family.Encoder()) {
			continue
		}
		if err := d.exec.Run(ctx, d.binary, syntheticEncodeArgs(family)...); err != nil {
			d.logger.Debug("synthetic encode failed", logging.Args(
				logging.String("family", string(family)),
				logging.Error(err),
			)...)
			continue
		}
		d.family = family
		d.available = true
		d.logger.Debug("hardware encoder resolved", logging.Args(
			logging.String("family", string(family)),
			logging.String("encoder", family.Encoder()),
		)...)
		return d.family, true
	}

	return "", false
}

// Info returns the resolved capability in display form.
func (d *Detector) Info(ctx context.Context) Info {
	family, ok := d.Detect(ctx)
	info := Info{Available: ok, Family: family, Encoder: SoftwareEncoder}
	if ok {
		info.Encoder = family.Encoder()
	}
	return info
}

// syntheticEncodeArgs builds the tiny generated-color-frame encode used to
// verify a candidate encoder actually works, not merely that it is listed.
func syntheticEncodeArgs(family Family) []string {
	args := []string{"-hide_banner", "-f", "lavfi", "-i", "color=black:s=256x256:d=0.1"}
	if family == FamilyVaapi {
		args = append(args, "-vaapi_device", "/dev/dri/renderD128")
		args = append(args, "-vf", "format=nv12,hwupload")
	}
	args = append(args, "-c:v", family.Encoder(), "-f", "null", "-")
	return args
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, binary, args...).Output()
}

func (commandExecutor) Run(ctx context.Context, binary string, args ...string) error {
	return exec.CommandContext(ctx, binary, args...).Run()
}
