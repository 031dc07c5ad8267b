package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"mixdown/internal/project"
)

// DefaultPreviewSeconds is the clip limit applied when the caller does not
// provide one.
const DefaultPreviewSeconds = 60

// Preview renders a short preview of the project to a temporary file and
// returns its path. Previews force the ultrafast preset with hardware
// acceleration on, and run synchronously without progress streaming. The
// temporary file is removed when the engine fails.
func (e *Exporter) Preview(ctx context.Context, p *project.Project, clipSeconds int) (string, error) {
	if err := e.begin(); err != nil {
		return "", err
	}

	if clipSeconds <= 0 {
		clipSeconds = DefaultPreviewSeconds
	}
	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("mixdown_preview_%d.mkv", os.Getpid()))

	args := BuildArgs(ctx, p, e.detector, Options{
		OutputPath:     tempPath,
		PreviewSeconds: clipSeconds,
		UseHardware:    true,
		SpeedPreset:    "ultrafast",
	})

	if err := e.exec.Run(ctx, e.binary, args, nil); err != nil {
		removeIfExists(tempPath)
		e.finish(StateFailed)
		return "", fmt.Errorf("generate preview: %w", err)
	}

	e.finish(StateCompleted)
	return tempPath, nil
}
