package export_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mixdown/internal/export"
	"mixdown/internal/hwaccel"
	"mixdown/internal/project"
)

// hardwareExecutor makes detection resolve the given family.
type hardwareExecutor struct {
	encoder string
}

func (h hardwareExecutor) Output(ctx context.Context, binary string, args ...string) ([]byte, error) {
	return []byte(h.encoder), nil
}

func (h hardwareExecutor) Run(ctx context.Context, binary string, args ...string) error {
	return nil
}

// softwareExecutor makes detection fail so the software path is taken.
type softwareExecutor struct{}

func (softwareExecutor) Output(ctx context.Context, binary string, args ...string) ([]byte, error) {
	return nil, errors.New("no engine")
}

func (softwareExecutor) Run(ctx context.Context, binary string, args ...string) error {
	return errors.New("no engine")
}

func softwareDetector() *hwaccel.Detector {
	return hwaccel.NewDetector("ffmpeg", hwaccel.WithExecutor(softwareExecutor{}))
}

func nvidiaDetector() *hwaccel.Detector {
	return hwaccel.NewDetector("ffmpeg", hwaccel.WithExecutor(hardwareExecutor{encoder: "h264_nvenc"}))
}

func multiClipProject() *project.Project {
	p := project.New()
	p.Videos = []project.VideoClip{
		{Path: "/media/a.mp4", Duration: 10},
		{Path: "/media/b.mp4", Duration: 8},
	}
	p.Settings.VideoCrossfade = 1
	return p
}

func argString(args []string) string {
	return strings.Join(args, " ")
}

func TestBuildArgsDeterministic(t *testing.T) {
	p := multiClipProject()
	detector := softwareDetector()
	opts := export.Options{OutputPath: "/out/final.mp4", SpeedPreset: "balanced"}

	first := export.BuildArgs(context.Background(), p, detector, opts)
	second := export.BuildArgs(context.Background(), p, detector, opts)
	if argString(first) != argString(second) {
		t.Fatalf("argument vector not deterministic:\n%q\n%q", first, second)
	}
}

func TestBuildArgsInputOrdering(t *testing.T) {
	p := multiClipProject()
	p.AudioTracks = []project.AudioTrack{{Path: "/media/song.mp3", Volume: 1.0}}

	args := export.BuildArgs(context.Background(), p, softwareDetector(), export.Options{
		OutputPath:  "/out/final.mp4",
		SpeedPreset: "balanced",
	})
	joined := argString(args)

	if !strings.HasPrefix(joined, "-y -i /media/a.mp4 -i /media/b.mp4 -i /media/song.mp3 ") {
		t.Fatalf("unexpected prefix: %q", joined)
	}
	if !strings.HasSuffix(joined, " /out/final.mp4") {
		t.Fatalf("output must be last: %q", joined)
	}
}

func TestBuildArgsSoftwareEncode(t *testing.T) {
	args := export.BuildArgs(context.Background(), multiClipProject(), softwareDetector(), export.Options{
		OutputPath:  "/out/final.mp4",
		SpeedPreset: "balanced",
	})
	joined := argString(args)

	if !strings.Contains(joined, "-c:v libx264 -preset medium -crf 20") {
		t.Fatalf("missing software encode flags: %q", joined)
	}
	if !strings.Contains(joined, "-c:a aac -b:a 192k") {
		t.Fatalf("missing audio encode flags: %q", joined)
	}
	if strings.Contains(joined, "-hwaccel") {
		t.Fatalf("unexpected hardware flag: %q", joined)
	}
}

func TestBuildArgsHardwareEncode(t *testing.T) {
	args := export.BuildArgs(context.Background(), multiClipProject(), nvidiaDetector(), export.Options{
		OutputPath:  "/out/final.mp4",
		UseHardware: true,
		SpeedPreset: "quality",
	})
	joined := argString(args)

	if !strings.HasPrefix(joined, "-y -hwaccel cuda -i ") {
		t.Fatalf("hardware flags must precede inputs: %q", joined)
	}
	if !strings.Contains(joined, "-c:v h264_nvenc -preset p7 -rc vbr -cq 20 -b:v 0") {
		t.Fatalf("missing nvenc flags: %q", joined)
	}
}

func TestBuildArgsHardwareDisabledSkipsDetection(t *testing.T) {
	args := export.BuildArgs(context.Background(), multiClipProject(), nvidiaDetector(), export.Options{
		OutputPath:  "/out/final.mp4",
		UseHardware: false,
		SpeedPreset: "balanced",
	})
	joined := argString(args)

	if strings.Contains(joined, "h264_nvenc") {
		t.Fatalf("hardware encoder used despite opt-out: %q", joined)
	}
	if !strings.Contains(joined, "-c:v libx264") {
		t.Fatalf("expected software encoder: %q", joined)
	}
}

func TestBuildArgsStreamCopySingleClipNoCrossfade(t *testing.T) {
	p := project.New()
	p.Videos = []project.VideoClip{{Path: "/media/a.mp4", Duration: 10}}
	p.Settings.VideoCrossfade = 0

	args := export.BuildArgs(context.Background(), p, softwareDetector(), export.Options{
		OutputPath:  "/out/final.mp4",
		SpeedPreset: "balanced",
	})
	joined := argString(args)

	if !strings.Contains(joined, "-c:v copy") {
		t.Fatalf("expected stream copy: %q", joined)
	}
	if strings.Contains(joined, "libx264") {
		t.Fatalf("unexpected re-encode: %q", joined)
	}
}

func TestBuildArgsWebmProfile(t *testing.T) {
	args := export.BuildArgs(context.Background(), multiClipProject(), nvidiaDetector(), export.Options{
		OutputPath:  "/out/final.webm",
		UseHardware: true,
		SpeedPreset: "balanced",
	})
	joined := argString(args)

	if !strings.Contains(joined, "-c:v libvpx-vp9 -b:v 0 -crf 30") {
		t.Fatalf("missing vp9 flags: %q", joined)
	}
	if !strings.Contains(joined, "-c:a libvorbis") {
		t.Fatalf("missing vorbis flag: %q", joined)
	}
	if strings.Contains(joined, "h264_nvenc") {
		t.Fatalf("hardware encoder must not apply to webm: %q", joined)
	}
	if strings.Contains(joined, "aac") {
		t.Fatalf("aac must not apply to webm: %q", joined)
	}
}

func TestBuildArgsPreviewForcesUltrafastAndTrim(t *testing.T) {
	args := export.BuildArgs(context.Background(), multiClipProject(), softwareDetector(), export.Options{
		OutputPath:     "/tmp/preview.mkv",
		PreviewSeconds: 30,
		SpeedPreset:    "quality",
	})
	joined := argString(args)

	if !strings.Contains(joined, "-preset ultrafast") {
		t.Fatalf("preview must force ultrafast: %q", joined)
	}
	if !strings.HasSuffix(joined, "-t 30 /tmp/preview.mkv") {
		t.Fatalf("trim must precede the output path: %q", joined)
	}
}

func TestBuildArgsVaapiOmitsPresetFlag(t *testing.T) {
	detector := hwaccel.NewDetector("ffmpeg", hwaccel.WithExecutor(hardwareExecutor{encoder: "h264_vaapi"}))

	args := export.BuildArgs(context.Background(), multiClipProject(), detector, export.Options{
		OutputPath:  "/out/final.mp4",
		UseHardware: true,
		SpeedPreset: "balanced",
	})
	joined := argString(args)

	if !strings.HasPrefix(joined, "-y -vaapi_device /dev/dri/renderD128 -i ") {
		t.Fatalf("missing vaapi device flag: %q", joined)
	}
	if !strings.Contains(joined, "-c:v h264_vaapi -qp 20") {
		t.Fatalf("expected vaapi encode without preset flag: %q", joined)
	}
}

func TestBuildArgsMapsFallbackWithoutGraph(t *testing.T) {
	p := project.New()
	p.Settings.IncludeVideoAudio = false
	p.Settings.IncludeMusic = false
	p.Videos = []project.VideoClip{{Path: "/media/a.mp4", Duration: 10}}

	args := export.BuildArgs(context.Background(), p, softwareDetector(), export.Options{
		OutputPath:  "/out/final.mp4",
		SpeedPreset: "balanced",
	})
	joined := argString(args)

	if !strings.Contains(joined, "-map [v0]") {
		t.Fatalf("expected graph video map: %q", joined)
	}
	if !strings.Contains(joined, "-an") {
		t.Fatalf("expected audio disabled: %q", joined)
	}
}
