package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ssargent/bitspect/pkg/api"
	"github.com/ssargent/bitspect/pkg/codec"
	"github.com/ssargent/bitspect/pkg/descriptor"
)

// descriptorCmd represents the descriptor command
var descriptorCmd = &cobra.Command{
	Use:   "descriptor [hex bytes...]",
	Short: "Decode a DVB extension descriptor",
	Long: `Decode one DVB extension descriptor (descriptor_tag 0x7F). The VVC
subpictures descriptor is decoded field by field; other extensions are shown
with their raw selector bytes.

Examples:
  bitspect descriptor 7f 07 23 82 01 02 03 04 02
  bitspect descriptor --file capture.bin --offset 188 -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd.Context())
		file, _ := cmd.Flags().GetString("file")
		offset, _ := cmd.Flags().GetInt("offset")

		opts := decodeOptions{
			file:     file,
			offset:   offset,
			format:   cfg.Decode.Output,
			maxBytes: cfg.Decode.MaxInputBytes,
		}
		return runDescriptor(cmd.OutOrStdout(), loggerFrom(cmd.Context()), opts, args)
	},
}

func init() {
	rootCmd.AddCommand(descriptorCmd)
	descriptorCmd.Flags().StringP("file", "f", "", "Capture file holding raw, hex or zstd-compressed bytes")
	descriptorCmd.Flags().Int("offset", 0, "Offset of descriptor_tag in the input")
}

func runDescriptor(w io.Writer, logger *slog.Logger, opts decodeOptions, args []string) error {
	data, err := readSource(opts, args)
	if err != nil {
		return err
	}

	ext, err := descriptor.Decode(data, opts.offset)
	if err != nil {
		off, _ := codec.OffsetOf(err)
		logger.Error("Descriptor decode failed",
			slog.Int("offset", off),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("decode failed: %w", err)
	}
	logger.Debug("Decoded descriptor",
		slog.String("tag_extension", ext.Name()),
		slog.Int("offset", ext.Offset),
	)

	return writeResult(w, opts.format, api.DecodeResult{
		Record: api.RecordDescriptor,
		Name:   ext.Name(),
		Offset: ext.Offset,
		Length: 2 + int(ext.Header.Length),
		Fields: ext.Fields(),
	})
}
