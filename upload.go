package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vistacli/internal/vista"
)

func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload media files to the library",
		Long: `upload sends each file through the vendor's multi-step upload flow and
files it in the media library. Files are processed one at a time, in the
order given; a failed file does not stop the rest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runUpload,
	}

	cmd.Flags().String("subfolder", "", "destination folder id (default: library root)")

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	subfolder, _ := cmd.Flags().GetString("subfolder")

	logger := buildLogger()

	client, err := newVistaClient(logger)
	if err != nil {
		return err
	}

	failed := 0

	for _, path := range args {
		receipt, upErr := client.UploadFile(cmd.Context(), path, subfolder)
		if upErr != nil {
			failed++

			statusf("Failed: %s: %v\n", path, upErr)

			if errors.Is(upErr, vista.ErrUnsupportedType) {
				statusf("Supported types: %s\n", strings.Join(vista.SupportedExtensions(), ", "))
			}

			continue
		}

		statusf("Uploaded %s (media %s)\n", path, receipt.MediaGID)

		logger.Debug("upload receipt",
			"path", path,
			"media_gid", receipt.MediaGID,
			"temp_id", receipt.TempID,
		)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(args))
	}

	statusf("Uploaded %d file(s)\n", len(args))

	return nil
}
