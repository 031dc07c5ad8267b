package project

import (
	"encoding/json"
	"fmt"
	"os"
)

// Extension is the conventional project file suffix.
const Extension = ".mixproj"

// Load reads a project document whole-file. Absent fields fall back to
// defaults so older documents keep loading as the format grows.
func Load(path string) (*Project, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	p := New()
	if err := json.Unmarshal(payload, p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	return p, nil
}

// Save writes the project document whole-file as indented UTF-8 JSON.
func Save(p *Project, path string) error {
	payload, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}

// UnmarshalJSON applies field defaults before decoding so persisted
// documents without a volume keep the 1.0 default, then enforces the
// volume clamp and derives a display name from the path when absent.
func (t *AudioTrack) UnmarshalJSON(data []byte) error {
	type plain AudioTrack
	aux := plain{Volume: 1.0}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = AudioTrack(aux)
	if t.Volume < 0 {
		t.Volume = 0
	}
	if t.Volume > MaxTrackVolume {
		t.Volume = MaxTrackVolume
	}
	if t.Name == "" && t.Path != "" {
		t.Name = baseName(t.Path)
	}
	return nil
}

// UnmarshalJSON derives a display name from the path when absent.
func (v *VideoClip) UnmarshalJSON(data []byte) error {
	type plain VideoClip
	var aux plain
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*v = VideoClip(aux)
	if v.Name == "" && v.Path != "" {
		v.Name = baseName(v.Path)
	}
	return nil
}

// UnmarshalJSON decodes over the default settings so absent fields keep
// their documented defaults.
func (s *Settings) UnmarshalJSON(data []byte) error {
	type plain Settings
	aux := plain(DefaultSettings())
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Settings(aux)
	if s.VideoVolume > 110 {
		s.VideoVolume = 110
	}
	if s.MusicVolume > 110 {
		s.MusicVolume = 110
	}
	return nil
}
