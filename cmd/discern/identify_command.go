package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"discern/internal/identify"
	"discern/internal/identity"
)

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var (
		kind           string
		title          string
		trackCount     int
		durationsFlag  string
		samplePath     string
		runtimeMinutes float64
		jsonOut        bool
	)

	cmd := &cobra.Command{
		Use:   "identify",
		Short: "Identify a disc or file against the media catalogs",
		Long: `Identify runs the full strategy pipeline for one disc or file: acoustic
fingerprint lookup, recording resolution, and name search for audio, or a
title search with runtime disambiguation for video.

Examples:
  discern identify --title "Casting Crowns Until The Whole World Hears" --tracks 10
  discern identify --sample track01.flac --durations 201,212,219 --tracks 3
  discern identify --kind video --title INCEPTION_WIDESCREEN --runtime 148`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaKind := identity.MediaKind(strings.ToLower(kind))
			if mediaKind != identity.MediaAudio && mediaKind != identity.MediaVideo {
				return fmt.Errorf("unsupported kind %q (want audio or video)", kind)
			}
			measured, err := parseDurationList(durationsFlag)
			if err != nil {
				return err
			}
			if trackCount == 0 && len(measured) > 0 {
				trackCount = len(measured)
			}

			engine, err := ctx.newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			result, err := engine.Identify(cmd.Context(), identity.Request{
				MediaKind:               mediaKind,
				TitleHint:               title,
				TargetTrackCount:        trackCount,
				MeasuredTrackDurations:  measured,
				EstimatedRuntimeMinutes: runtimeMinutes,
				SampleFilePath:          samplePath,
			})
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, result)
			}
			renderIdentifyResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "audio", "Media kind: audio or video")
	cmd.Flags().StringVar(&title, "title", "", "Raw disc or file label")
	cmd.Flags().IntVar(&trackCount, "tracks", 0, "Expected track count (defaults to the duration count)")
	cmd.Flags().StringVar(&durationsFlag, "durations", "", "Measured per-track seconds, comma separated")
	cmd.Flags().StringVar(&samplePath, "sample", "", "Representative audio file to fingerprint")
	cmd.Flags().Float64Var(&runtimeMinutes, "runtime", 0, "Estimated runtime in minutes (video)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")

	return cmd
}

func renderIdentifyResult(cmd *cobra.Command, result *identify.Result) {
	out := cmd.OutOrStdout()

	if !result.Matched {
		fmt.Fprintln(out, "No identification. The caller should proceed without enriched metadata.")
		return
	}

	if result.Movie != nil {
		movie := result.Movie
		fmt.Fprintf(out, "%s\n\n", colorize("Matched movie via "+result.Strategy, ansiGreen, out))
		rows := [][]string{
			{"Title", movie.Title},
			{"Year", movie.Year},
			{"Runtime", fmt.Sprintf("%d min", movie.RuntimeMinutes)},
			{"Director", movie.Director},
			{"Genres", strings.Join(movie.Genres, ", ")},
			{"Rating", fmt.Sprintf("%.1f", movie.Rating)},
			{"TMDB ID", fmt.Sprintf("%d", movie.TMDBID)},
		}
		fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))
		return
	}

	release := result.Release
	via := result.Strategy
	if result.FromCache {
		via += " (cached)"
	}
	fmt.Fprintf(out, "%s\n\n", colorize("Matched release via "+via, ansiGreen, out))
	fmt.Fprintf(out, "%s - %s (%s)\n", release.Artist, release.Title, release.Year)
	if release.Label != "" {
		fmt.Fprintf(out, "Label: %s\n", release.Label)
	}
	if release.CoverArtURL != "" {
		fmt.Fprintf(out, "Cover art: %s\n", release.CoverArtURL)
	}
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(release.Tracks))
	for _, track := range release.Tracks {
		duration := ""
		if track.DurationMS > 0 {
			duration = formatSeconds(float64(track.DurationMS) / 1000.0)
		}
		rows = append(rows, []string{track.Number, track.Title, duration})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Title", "Length"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight},
	))
}
