package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"voxpipe/internal/media"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "extract <video>",
		Short: "Extract mono WAV audio from a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source, err := resolveInput(args[0])
			if err != nil {
				return err
			}

			dest := strings.TrimSpace(outputPath)
			if dest == "" {
				dest = siblingPath(source, "_audio.wav")
			}

			extractor := media.NewExtractor(cfg.Audio.FFmpegBinary)
			if err := extractor.ExtractAudio(cmd.Context(), source, dest, cfg.Audio.SampleRate, cfg.Audio.Channels); err != nil {
				return fmt.Errorf("extract audio: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Extracted audio to %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination WAV path")
	return cmd
}

func resolveInput(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("file does not exist: %s", absPath)
		}
		return "", fmt.Errorf("inspect file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", absPath)
	}
	return absPath, nil
}
