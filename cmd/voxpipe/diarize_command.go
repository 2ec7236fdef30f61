package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voxpipe/internal/services/diarize"
)

func newDiarizeCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "diarize <audio>",
		Short: "Partition a WAV file into speaker turns with pyannote",
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

			dest := strings.TrimSpace(outputPath)
			if dest == "" {
				dest = siblingPath(audio, "_diarization.json")
			}

			service := ctx.newDiarizeService(cfg)
			if err := service.Diarize(cmd.Context(), audio, dest); err != nil {
				return fmt.Errorf("diarize: %w", err)
			}

			result, err := diarize.LoadTurns(dest)
			if err != nil {
				return fmt.Errorf("parse diarization: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote diarization to %s\n", dest)
			fmt.Fprintf(out, "Speakers: %d, turns: %d\n", result.NumSpeakers, len(result.Segments))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination JSON path")
	return cmd
}
