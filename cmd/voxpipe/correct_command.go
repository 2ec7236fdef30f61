package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voxpipe/internal/transcript"
)

func newCorrectCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "correct <document.json>",
		Short: "Fix transcription errors with the correction model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			docPath, err := resolveInput(args[0])
			if err != nil {
				return err
			}

			doc, err := transcript.ReadDocument(docPath)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			client := ctx.newOllamaClient(cfg, cfg.Ollama.CorrectionModel)
			corrected, err := client.CorrectDocument(cmd.Context(), doc, segmentProgress(cmd.ErrOrStderr(), "Correcting"))
			if err != nil {
				return fmt.Errorf("correct: %w", err)
			}

			dest := strings.TrimSpace(outputPath)
			if dest == "" {
				dest = documentOutput(docPath, "_corrected")
			}
			if err := transcript.WriteDocument(dest, corrected); err != nil {
				return fmt.Errorf("write corrected document: %w", err)
			}

			changed := 0
			for _, seg := range corrected.Segments {
				if seg.OriginalText != "" {
					changed++
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote corrected document to %s\n", dest)
			fmt.Fprintf(out, "Changed %d of %d segments (model %s)\n", changed, len(corrected.Segments), corrected.CorrectionModel)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination JSON path")
	return cmd
}

// documentOutput maps talk_merged.json to talk<suffix>.json, falling back to
// appending the suffix when the input lacks a stage marker.
func documentOutput(docPath, suffix string) string {
	base := strings.TrimSuffix(docPath, ".json")
	for _, marker := range []string{"_merged", "_corrected"} {
		base = strings.TrimSuffix(base, marker)
	}
	return base + suffix + ".json"
}
