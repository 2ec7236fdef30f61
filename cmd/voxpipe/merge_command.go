package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voxpipe/internal/cleaning"
	"voxpipe/internal/merge"
	"voxpipe/internal/services/diarize"
	"voxpipe/internal/services/whisper"
	"voxpipe/internal/transcript"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var consolidate bool

	cmd := &cobra.Command{
		Use:   "merge <transcript.json> <diarization.json>",
		Short: "Assign speakers to transcript segments by overlap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			transcriptPath, err := resolveInput(args[0])
			if err != nil {
				return err
			}
			diarizationPath, err := resolveInput(args[1])
			if err != nil {
				return err
			}

			segments, err := whisper.LoadSegments(transcriptPath)
			if err != nil {
				return fmt.Errorf("parse transcript: %w", err)
			}
			if cfg.Cleaning.Enabled {
				cleaned, removed := cleaning.RemoveRepeatedSegments(segments, cfg.Cleaning.SimilarityThreshold, cfg.Cleaning.MaxConsecutive)
				if removed > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %d repeated segments\n", removed)
				}
				segments = cleaned
			}

			turns, err := diarize.LoadTurns(diarizationPath)
			if err != nil {
				return fmt.Errorf("parse diarization: %w", err)
			}

			doc, err := merge.Run(segments, turns.Segments)
			if err != nil {
				return fmt.Errorf("merge: %w", err)
			}
			if consolidate {
				doc = merge.Consolidate(doc)
			}

			dest := strings.TrimSpace(outputPath)
			if dest == "" {
				dest = defaultMergeOutput(transcriptPath)
			}
			if err := transcript.WriteDocument(dest, doc); err != nil {
				return fmt.Errorf("write merged document: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote merged document to %s\n", dest)
			fmt.Fprintf(out, "Segments: %d, speakers: %d\n", len(doc.Segments), len(doc.Speakers))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination JSON path")
	cmd.Flags().BoolVar(&consolidate, "consolidate", false, "Join consecutive segments from the same speaker")
	return cmd
}

// defaultMergeOutput maps talk_transcript.json to talk_merged.json, falling
// back to appending _merged when the transcript lacks the suffix.
func defaultMergeOutput(transcriptPath string) string {
	base := strings.TrimSuffix(transcriptPath, ".json")
	base = strings.TrimSuffix(base, "_transcript")
	return base + "_merged.json"
}
