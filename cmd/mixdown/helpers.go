package main

import (
	"context"
	"fmt"

	"mixdown/internal/config"
	"mixdown/internal/media/durations"
	"mixdown/internal/project"
)

func loadProject(ctx context.Context, cache *durations.Cache, path string) (*project.Project, string, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve project path: %w", err)
	}
	p, err := project.Load(expanded)
	if err != nil {
		return nil, "", err
	}
	refreshDurations(ctx, cache, p)
	return p, expanded, nil
}

// refreshDurations re-probes media so a project exported against
// since-modified files uses current lengths. A failed probe keeps the stored
// value.
func refreshDurations(ctx context.Context, cache *durations.Cache, p *project.Project) {
	for i := range p.Videos {
		if d := cache.Duration(ctx, p.Videos[i].Path); d > 0 {
			p.Videos[i].Duration = d
		}
	}
	for i := range p.AudioTracks {
		if d := cache.Duration(ctx, p.AudioTracks[i].Path); d > 0 {
			p.AudioTracks[i].Duration = d
		}
	}
}

func formatSeconds(seconds float64) string {
	if seconds <= 0 {
		return "0:00"
	}
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
