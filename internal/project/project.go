package project

import (
	"path/filepath"
)

// MaxTrackVolume is the upper bound enforced on per-track volume.
const MaxTrackVolume = 1.1

// VideoClip is one entry on the video timeline. Ordering is significant:
// timeline order is concatenation order. Duration is authoritative and is
// not re-probed at export time.
type VideoClip struct {
	Path     string  `json:"path"`
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
}

// AudioTrack is one music layer. Multiple tracks may be active at once.
type AudioTrack struct {
	Path     string  `json:"path"`
	Volume   float64 `json:"volume"`
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
	Mute     bool    `json:"mute"`
	Solo     bool    `json:"solo"`
}

// EffectiveVolume returns the volume applied in the mix: zero when muted,
// otherwise the stored volume clamped to MaxTrackVolume.
func (t AudioTrack) EffectiveVolume() float64 {
	if t.Mute {
		return 0.0
	}
	return min(t.Volume, MaxTrackVolume)
}

// Settings holds the mixing and compositing configuration for a project.
// MusicVolume is informational only; per-track volume governs the actual mix.
type Settings struct {
	IncludeVideoAudio bool    `json:"include_video_audio"`
	IncludeMusic      bool    `json:"include_music"`
	AudioCrossfade    float64 `json:"audio_crossfade"`
	VideoCrossfade    float64 `json:"video_crossfade"`
	CutMusicAtEnd     bool    `json:"cut_music_at_end"`
	VideoVolume       float64 `json:"video_volume"`
	MusicVolume       float64 `json:"music_volume"`
	UseGPU            bool    `json:"use_gpu"`
	SpeedPreset       string  `json:"speed_preset"`
}

// DefaultSettings returns the settings applied to a new project and used as
// the base when decoding a persisted one.
func DefaultSettings() Settings {
	return Settings{
		IncludeVideoAudio: true,
		IncludeMusic:      true,
		AudioCrossfade:    10.0,
		VideoCrossfade:    1.0,
		CutMusicAtEnd:     false,
		VideoVolume:       100.0,
		MusicVolume:       70.0,
		UseGPU:            true,
		SpeedPreset:       "balanced",
	}
}

// Project aggregates the timeline and its settings.
type Project struct {
	Videos      []VideoClip  `json:"videos"`
	AudioTracks []AudioTrack `json:"audio_tracks"`
	Settings    Settings     `json:"settings"`
}

// New returns an empty project with default settings.
func New() *Project {
	return &Project{Settings: DefaultSettings()}
}

// ActiveTracks returns the audio tracks included in the mix. When any track
// is soloed, only unmuted solo tracks are active; otherwise all unmuted
// tracks are.
func (p *Project) ActiveTracks() []AudioTrack {
	if len(p.AudioTracks) == 0 {
		return nil
	}

	var solos []AudioTrack
	for _, t := range p.AudioTracks {
		if t.Solo {
			solos = append(solos, t)
		}
	}
	if len(solos) > 0 {
		var active []AudioTrack
		for _, t := range solos {
			if !t.Mute {
				active = append(active, t)
			}
		}
		return active
	}

	var active []AudioTrack
	for _, t := range p.AudioTracks {
		if !t.Mute {
			active = append(active, t)
		}
	}
	return active
}

// MusicTracks returns the tracks that participate in the music branch of
// the mix: the active tracks when music is included, nothing otherwise.
func (p *Project) MusicTracks() []AudioTrack {
	if !p.Settings.IncludeMusic {
		return nil
	}
	return p.ActiveTracks()
}

// VideoDuration returns the total timeline length in seconds: the sum of
// clip durations minus one crossfade overlap per transition, floored at
// zero.
func (p *Project) VideoDuration() float64 {
	if len(p.Videos) == 0 {
		return 0.0
	}
	var base float64
	for _, v := range p.Videos {
		base += v.Duration
	}
	overlap := p.Settings.VideoCrossfade * float64(len(p.Videos)-1)
	return max(base-overlap, 0.0)
}

// MusicDuration returns the summed duration of the active tracks.
func (p *Project) MusicDuration() float64 {
	var total float64
	for _, t := range p.ActiveTracks() {
		total += t.Duration
	}
	return total
}

func baseName(path string) string {
	return filepath.Base(path)
}
