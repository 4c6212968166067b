package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"discern/internal/identity"
	"discern/internal/reconcile"
)

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	var (
		filesFlag  string
		tracksFlag string
		algorithm  string
		tolerance  float64
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Assign measured files to canonical tracks by duration",
		Long: `Reconcile maps measured file durations onto a canonical track listing.

Examples:
  discern reconcile --files 181,242,305 --tracks 180,240,300
  discern reconcile --files 199,200 --tracks 200,198 --algorithm optimal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fileSeconds, err := parseDurationList(filesFlag)
			if err != nil {
				return err
			}
			trackSeconds, err := parseDurationList(tracksFlag)
			if err != nil {
				return err
			}
			if len(fileSeconds) == 0 || len(trackSeconds) == 0 {
				return fmt.Errorf("both --files and --tracks are required")
			}

			if algorithm == "" || tolerance == 0 {
				if cfg, err := ctx.ensureConfig(); err == nil {
					if algorithm == "" {
						algorithm = cfg.Reconcile.Algorithm
					}
					if tolerance == 0 {
						tolerance = cfg.Reconcile.MatchToleranceSeconds
					}
				}
			}

			var reconciler reconcile.Reconciler
			switch strings.ToLower(algorithm) {
			case "", "greedy":
				reconciler = reconcile.NewGreedy(tolerance)
			case "optimal":
				reconciler = reconcile.NewOptimal(tolerance)
			default:
				return fmt.Errorf("unsupported algorithm %q (want greedy or optimal)", algorithm)
			}

			files := make([]identity.FileDurationRecord, len(fileSeconds))
			for i, seconds := range fileSeconds {
				files[i] = identity.FileDurationRecord{
					FileRef:         fmt.Sprintf("file-%02d", i+1),
					MeasuredSeconds: seconds,
				}
			}
			tracks := make([]identity.TrackDescriptor, len(trackSeconds))
			for i, seconds := range trackSeconds {
				tracks[i] = identity.TrackDescriptor{
					Number:     fmt.Sprintf("%d", i+1),
					Title:      fmt.Sprintf("Track %d", i+1),
					DurationMS: int(seconds * 1000),
				}
			}

			mapping := reconciler.Reconcile(files, tracks)
			if jsonOut {
				return writeJSON(cmd, mapping)
			}
			renderMapping(cmd, reconciler.Name(), files, tracks, mapping)
			return nil
		},
	}

	cmd.Flags().StringVar(&filesFlag, "files", "", "Measured file durations in seconds, comma separated")
	cmd.Flags().StringVar(&tracksFlag, "tracks", "", "Canonical track durations in seconds, comma separated")
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "Assignment algorithm: greedy or optimal")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "Match tolerance in seconds")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the mapping as JSON")

	return cmd
}

func renderMapping(cmd *cobra.Command, algorithm string, files []identity.FileDurationRecord, tracks []identity.TrackDescriptor, mapping identity.ReconciliationMapping) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Reconciled %d of %d files (%s)\n\n",
		len(mapping.Assignments), len(files), algorithm)

	fileIndices := make([]int, 0, len(mapping.Assignments))
	for fileIndex := range mapping.Assignments {
		fileIndices = append(fileIndices, fileIndex)
	}
	sort.Ints(fileIndices)

	rows := make([][]string, 0, len(fileIndices))
	for _, fileIndex := range fileIndices {
		trackIndex := mapping.Assignments[fileIndex]
		file := files[fileIndex]
		track := tracks[trackIndex]
		diff := file.MeasuredSeconds - float64(track.DurationMS)/1000.0
		rows = append(rows, []string{
			file.FileRef,
			formatSeconds(file.MeasuredSeconds),
			track.Title,
			formatSeconds(float64(track.DurationMS) / 1000.0),
			fmt.Sprintf("%+.1fs", diff),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Measured", "Track", "Canonical", "Diff"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignRight},
	))

	if len(mapping.Unmatched) > 0 {
		fmt.Fprintln(out, "\nUnmatched files:")
		for _, unmatched := range mapping.Unmatched {
			fmt.Fprintf(out, "  %s (best diff %.1fs)\n",
				files[unmatched.FileIndex].FileRef, unmatched.BestDiffSeconds)
		}
	}
}
