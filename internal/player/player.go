// Package player opens a finished media file for the user, preferring
// ffplay and falling back to the platform opener.
package player

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Play launches playback of the file at path and returns without waiting
// for the viewer to close.
func Play(path string) error {
	if ffplay, err := exec.LookPath("ffplay"); err == nil {
		cmd := exec.Command(ffplay, "-autoexit", "-loglevel", "quiet", "-window_title", "Preview", path)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("launch ffplay: %w", err)
		}
		return nil
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	return nil
}
