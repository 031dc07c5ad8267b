package export

import (
	"context"
	"strconv"
	"strings"

	"mixdown/internal/filtergraph"
	"mixdown/internal/hwaccel"
	"mixdown/internal/project"
)

// Options selects how a project is rendered to an output file.
type Options struct {
	OutputPath string
	// PreviewSeconds > 0 limits output length and forces the ultrafast
	// preset; previews prioritize turnaround over quality.
	PreviewSeconds int
	UseHardware    bool
	SpeedPreset    string
}

// BuildArgs composes the complete, order-sensitive argument vector for the
// transcoding engine: inputs, hardware flags, filter graph, stream mapping,
// codec and quality flags, trims, and the output path. Identical inputs
// always produce an identical vector.
func BuildArgs(ctx context.Context, p *project.Project, detector *hwaccel.Detector, opts Options) []string {
	settings := p.Settings
	tracks := p.MusicTracks()

	var family hwaccel.Family
	hardware := false
	if opts.UseHardware {
		family, hardware = detector.Detect(ctx)
	}

	args := []string{"-y"}
	if hardware {
		args = append(args, family.PreInputArgs()...)
	}

	// Clip inputs occupy indices [0, videoCount); track inputs follow. The
	// filter graph's node numbering depends on this ordering.
	for _, clip := range p.Videos {
		args = append(args, "-i", clip.Path)
	}
	for _, track := range tracks {
		args = append(args, "-i", track.Path)
	}

	graph := filtergraph.Synthesize(p)
	if graph.Description != "" {
		args = append(args, "-filter_complex", graph.Description)
	}

	if graph.VideoTag != "" {
		args = append(args, "-map", graph.VideoTag)
	} else {
		args = append(args, "-map", "0:v:0")
	}
	if graph.AudioTag != "" {
		args = append(args, "-map", graph.AudioTag)
	} else {
		args = append(args, "-an")
	}

	mustReencode := len(p.Videos) > 1 || settings.VideoCrossfade > 0.0

	if strings.HasSuffix(strings.ToLower(opts.OutputPath), ".webm") {
		// Fixed software VP9/Vorbis profile regardless of hardware.
		args = append(args, "-c:v", "libvpx-vp9", "-b:v", "0", "-crf", "30")
		args = append(args, "-c:a", "libvorbis")
	} else {
		if mustReencode {
			preset := opts.SpeedPreset
			if opts.PreviewSeconds > 0 {
				preset = "ultrafast"
			}
			if hardware {
				args = append(args, "-c:v", family.Encoder())
				args = append(args, family.PresetArgs(preset)...)
				args = append(args, family.QualityArgs()...)
			} else {
				args = append(args, "-c:v", hwaccel.SoftwareEncoder)
				args = append(args, hwaccel.SoftwarePresetArgs(preset)...)
				args = append(args, "-crf", "20")
			}
		} else {
			args = append(args, "-c:v", "copy")
		}
		args = append(args, "-c:a", "aac", "-b:a", "192k")
	}

	if opts.PreviewSeconds > 0 {
		args = append(args, "-t", strconv.Itoa(opts.PreviewSeconds))
	}

	args = append(args, opts.OutputPath)
	return args
}
