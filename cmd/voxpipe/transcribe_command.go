package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voxpipe/internal/services/whisper"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var outputBase string

	cmd := &cobra.Command{
		Use:   "transcribe <audio>",
		Short: "Transcribe a WAV file with whisper-cli",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			audio, err := resolveInput(args[0])
			if err != nil {
				return err
			}

			base := strings.TrimSpace(outputBase)
			if base == "" {
				base = siblingPath(audio, "_transcript")
			}

			service := ctx.newWhisperService(cfg)
			transcriptPath, err := service.Transcribe(cmd.Context(), audio, base)
			if err != nil {
				return fmt.Errorf("transcribe: %w", err)
			}

			segments, err := whisper.LoadSegments(transcriptPath)
			if err != nil {
				return fmt.Errorf("parse transcript: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote transcript to %s\n", transcriptPath)
			fmt.Fprintf(out, "Segments: %d\n", len(segments))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputBase, "output-base", "o", "", "Output path without the .json extension")
	return cmd
}
