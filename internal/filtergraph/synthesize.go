package filtergraph

import (
	"fmt"

	"mixdown/internal/project"
)

// Result carries the rendered filter-graph description and the terminal pad
// names to map into the output streams. Tags include the surrounding
// brackets; an empty AudioTag means the export has no audio stream.
type Result struct {
	Description string
	VideoTag    string
	AudioTag    string
}

// Synthesize lowers a project timeline into a filter graph. It is a pure
// function of the project data: clip and track ordering is preserved into
// the node tag numbering, with clip inputs at indices [0, videoCount) and
// track inputs at [videoCount, videoCount+trackCount).
func Synthesize(p *project.Project) Result {
	var g Graph
	settings := p.Settings

	videoTag, videoAudioTag := videoChain(&g, p.Videos, settings.VideoCrossfade)

	// Scale the video branch audio by the project volume (0-100 -> 0.0-1.0).
	mixedVideoAudio := ""
	if videoAudioTag != "" {
		g.Add(fmt.Sprintf("volume=%s", formatFloat(settings.VideoVolume/100.0)), "va", videoAudioTag)
		mixedVideoAudio = "va"
	}

	musicTag := ""
	if tracks := p.MusicTracks(); len(tracks) > 0 {
		musicTag = audioChain(&g, tracks, int(settings.AudioCrossfade), len(p.Videos))
		if settings.CutMusicAtEnd {
			g.Add(fmt.Sprintf("atrim=duration=%s", formatFloat(p.VideoDuration())), "mus", musicTag)
			musicTag = "mus"
		}
	}

	finalAudio := ""
	switch {
	case settings.IncludeVideoAudio && mixedVideoAudio != "" && musicTag != "":
		g.Add("amix=inputs=2:duration=longest:dropout_transition=0", "aout", mixedVideoAudio, musicTag)
		finalAudio = "aout"
	case settings.IncludeVideoAudio && mixedVideoAudio != "":
		finalAudio = mixedVideoAudio
	case musicTag != "":
		finalAudio = musicTag
	}

	return Result{
		Description: g.Render(),
		VideoTag:    bracket(videoTag),
		AudioTag:    bracket(finalAudio),
	}
}

// audioChain emits a volume-normalization node per track, then folds the
// tracks pairwise left-to-right with an equal-power crossfade. The fold must
// preserve source ordering: crossfade duration and offset are
// order-dependent. Returns the terminal pad name.
func audioChain(g *Graph, tracks []project.AudioTrack, crossfadeSeconds int, baseInput int) string {
	for i, track := range tracks {
		g.Add(
			fmt.Sprintf("volume=%s", formatFloat(track.EffectiveVolume())),
			fmt.Sprintf("ma%d", i),
			fmt.Sprintf("%d:a", baseInput+i),
		)
	}

	if len(tracks) == 1 {
		return "ma0"
	}

	prev := "ma0"
	for j := 1; j < len(tracks); j++ {
		out := fmt.Sprintf("mx%d", j)
		g.Add(
			fmt.Sprintf("acrossfade=d=%d:c1=qsin:c2=qsin", crossfadeSeconds),
			out,
			prev,
			fmt.Sprintf("ma%d", j),
		)
		prev = out
	}
	return prev
}

// videoChain normalizes each clip (uniform pixel format and sample aspect
// ratio, no-op audio pass-through), then folds clips left-to-right with a
// timed cross-transition. Returns the terminal video and audio pad names.
//
// The transition offset for clip j is the running total of prior clip
// durations minus prior crossfade overlaps, minus one more crossfade,
// floored at zero. The accumulator adds duration-crossfade per clip (also
// floored) so every subsequent offset stays correct.
func videoChain(g *Graph, clips []project.VideoClip, crossfade float64) (string, string) {
	if len(clips) == 0 {
		return "", ""
	}

	for i := range clips {
		g.Add("format=yuv420p,setsar=1", fmt.Sprintf("v%d", i), fmt.Sprintf("%d:v", i))
		g.Add("anull", fmt.Sprintf("va%d", i), fmt.Sprintf("%d:a", i))
	}

	if len(clips) == 1 {
		return "v0", "va0"
	}

	acc := clips[0].Duration
	prevVideo, prevAudio := "v0", "va0"

	for j := 1; j < len(clips); j++ {
		offset := max(acc-crossfade, 0.0)
		videoOut := fmt.Sprintf("vx%d", j)
		audioOut := fmt.Sprintf("vax%d", j)
		g.Add(
			fmt.Sprintf("xfade=transition=fade:duration=%s:offset=%s", formatFloat(crossfade), formatFloat(offset)),
			videoOut,
			prevVideo,
			fmt.Sprintf("v%d", j),
		)
		g.Add(
			fmt.Sprintf("acrossfade=d=%s:c1=qsin:c2=qsin", formatFloat(crossfade)),
			audioOut,
			prevAudio,
			fmt.Sprintf("va%d", j),
		)
		prevVideo, prevAudio = videoOut, audioOut
		acc += max(clips[j].Duration-crossfade, 0.0)
	}

	return prevVideo, prevAudio
}

func bracket(tag string) string {
	if tag == "" {
		return ""
	}
	return "[" + tag + "]"
}
