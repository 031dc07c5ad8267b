package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"mixdown/internal/project"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	p := project.New()
	p.Videos = []project.VideoClip{{Path: "/media/a.mp4", Name: "a.mp4", Duration: 12.5}}
	p.AudioTracks = []project.AudioTrack{{Path: "/media/b.mp3", Name: "b.mp3", Volume: 0.7, Duration: 30}}
	p.Settings.VideoCrossfade = 2.5

	path := filepath.Join(t.TempDir(), "demo"+project.Extension)
	if err := project.Save(p, path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := project.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded.Videos) != 1 || loaded.Videos[0].Path != "/media/a.mp4" {
		t.Fatalf("unexpected videos: %+v", loaded.Videos)
	}
	if loaded.Videos[0].Duration != 12.5 {
		t.Fatalf("unexpected clip duration: %v", loaded.Videos[0].Duration)
	}
	if len(loaded.AudioTracks) != 1 || loaded.AudioTracks[0].Volume != 0.7 {
		t.Fatalf("unexpected tracks: %+v", loaded.AudioTracks)
	}
	if loaded.Settings.VideoCrossfade != 2.5 {
		t.Fatalf("unexpected crossfade: %v", loaded.Settings.VideoCrossfade)
	}
}

func TestLoadAppliesTrackDefaults(t *testing.T) {
	payload := `{
  "videos": [{"path": "/media/clip.mp4"}],
  "audio_tracks": [{"path": "/media/song.mp3"}],
  "settings": {}
}`
	path := filepath.Join(t.TempDir(), "sparse"+project.Extension)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p, err := project.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	track := p.AudioTracks[0]
	if track.Volume != 1.0 {
		t.Fatalf("expected default volume 1.0, got %v", track.Volume)
	}
	if track.Name != "song.mp3" {
		t.Fatalf("expected name from path, got %q", track.Name)
	}
	if p.Videos[0].Name != "clip.mp4" {
		t.Fatalf("expected clip name from path, got %q", p.Videos[0].Name)
	}

	// Absent settings fall back to the defaults, not zero values.
	defaults := project.DefaultSettings()
	if p.Settings.AudioCrossfade != defaults.AudioCrossfade {
		t.Fatalf("expected default audio crossfade, got %v", p.Settings.AudioCrossfade)
	}
	if !p.Settings.IncludeMusic || !p.Settings.IncludeVideoAudio {
		t.Fatalf("expected audio branches enabled by default: %+v", p.Settings)
	}
}

func TestLoadClampsVolumes(t *testing.T) {
	payload := `{
  "videos": [],
  "audio_tracks": [{"path": "/media/song.mp3", "volume": 9.9}],
  "settings": {"music_volume": 400, "video_volume": 250}
}`
	path := filepath.Join(t.TempDir(), "loud"+project.Extension)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p, err := project.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.AudioTracks[0].Volume != project.MaxTrackVolume {
		t.Fatalf("expected track volume clamp, got %v", p.AudioTracks[0].Volume)
	}
	if p.Settings.MusicVolume != 110 || p.Settings.VideoVolume != 110 {
		t.Fatalf("expected settings volume clamp, got %+v", p.Settings)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := project.Load(filepath.Join(t.TempDir(), "absent.mixproj")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
