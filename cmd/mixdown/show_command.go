package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mixdown/internal/export"
	"mixdown/internal/filtergraph"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var showGraph bool
	var showArgs bool

	cmd := &cobra.Command{
		Use:   "show <project>",
		Short: "Display a project's timeline and settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.ensureDurations()
			if err != nil {
				return err
			}

			p, path, err := loadProject(cmd.Context(), cache, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project: %s\n", path)

			if len(p.Videos) > 0 {
				rows := make([][]string, 0, len(p.Videos))
				for i, clip := range p.Videos {
					rows = append(rows, []string{
						fmt.Sprintf("%d", i+1),
						clip.Name,
						formatSeconds(clip.Duration),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Clip", "Duration"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight},
				))
			} else {
				fmt.Fprintln(out, "No video clips")
			}

			if len(p.AudioTracks) > 0 {
				rows := make([][]string, 0, len(p.AudioTracks))
				for _, track := range p.AudioTracks {
					rows = append(rows, []string{
						track.Name,
						fmt.Sprintf("%.0f%%", track.EffectiveVolume()*100),
						yesNo(track.Mute),
						yesNo(track.Solo),
						formatSeconds(track.Duration),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Track", "Volume", "Mute", "Solo", "Duration"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignRight},
				))
			}

			settings := p.Settings
			fmt.Fprintf(out, "Timeline length: %s\n", formatSeconds(p.VideoDuration()))
			fmt.Fprintf(out, "Video crossfade: %.1fs, audio crossfade: %.1fs\n", settings.VideoCrossfade, settings.AudioCrossfade)
			fmt.Fprintf(out, "Video audio: %s, music: %s, cut music at end: %s\n",
				yesNo(settings.IncludeVideoAudio), yesNo(settings.IncludeMusic), yesNo(settings.CutMusicAtEnd))
			fmt.Fprintf(out, "GPU: %s, preset: %s\n", yesNo(settings.UseGPU), settings.SpeedPreset)

			if showGraph {
				graph := filtergraph.Synthesize(p)
				if graph.Description == "" {
					fmt.Fprintln(out, "Filter graph: (none)")
				} else {
					fmt.Fprintf(out, "Filter graph:\n%s\n", strings.ReplaceAll(graph.Description, ";", ";\n"))
				}
			}

			if showArgs {
				detector, err := ctx.ensureDetector()
				if err != nil {
					return err
				}
				engineArgs := export.BuildArgs(cmd.Context(), p, detector, export.Options{
					OutputPath:  "<output>",
					UseHardware: settings.UseGPU,
					SpeedPreset: settings.SpeedPreset,
				})
				fmt.Fprintf(out, "Engine arguments:\n%s\n", strings.Join(engineArgs, " "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showGraph, "graph", false, "Print the synthesized filter graph")
	cmd.Flags().BoolVar(&showArgs, "args", false, "Print the engine argument vector")
	return cmd
}
