package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Result represents the parsed output from a structured ffprobe query.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream carries the per-stream fields the duration query requests.
type Stream struct {
	Duration string `json:"duration"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Duration string `json:"duration"`
}

// Client executes ffprobe queries against media files.
type Client struct {
	binary string
}

// NewClient constructs a probe client. An empty binary falls back to
// resolving "ffprobe" from PATH.
func NewClient(binary string) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	return &Client{binary: binary}
}

// QuickDuration runs the fast scalar duration query against the container
// metadata. It returns an error when the container does not advertise a
// duration (some streamed or live-recorded formats omit it).
func (c *Client) QuickDuration(ctx context.Context, path string) (float64, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, errors.New("ffprobe quick duration: empty path")
	}

	cmd := exec.CommandContext(ctx, c.binary, "-v", "error", "-show_entries", "format=duration", "-of", "default=nw=1:nk=1", path)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe quick duration: %w", err)
	}

	value := strings.TrimSpace(string(output))
	if value == "" || value == "N/A" {
		return 0, errors.New("ffprobe quick duration: not reported")
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe quick duration: parse %q: %w", value, err)
	}
	return parsed, nil
}

// Inspect runs the structured query carrying both container- and
// stream-level durations and decodes the JSON response.
func (c *Client) Inspect(ctx context.Context, path string) (Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, c.binary, "-v", "error", "-print_format", "json", "-show_entries", "format=duration,stream=duration", path)
	output, err := cmd.Output()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// DurationSeconds returns the container duration when reported, falling back
// to the first stream that carries one, or 0 when neither does.
func (r Result) DurationSeconds() float64 {
	if d, ok := parseDuration(r.Format.Duration); ok {
		return d
	}
	for _, stream := range r.Streams {
		if d, ok := parseDuration(stream.Duration); ok {
			return d
		}
	}
	return 0
}

func parseDuration(value string) (float64, bool) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" || cleaned == "N/A" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
