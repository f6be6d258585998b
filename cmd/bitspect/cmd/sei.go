package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ssargent/bitspect/pkg/api"
	"github.com/ssargent/bitspect/pkg/codec"
	"github.com/ssargent/bitspect/pkg/sei"
)

// seiCmd represents the sei command
var seiCmd = &cobra.Command{
	Use:   "sei [hex bytes...]",
	Short: "Decode SEI messages",
	Long: `Decode a supplemental enhancement information message: the escape
coded payloadType and payloadSize, then the raw payload bytes.

With --all the input is treated as an sei_rbsp() and every message up to the
rbsp trailing bits is decoded.

Examples:
  bitspect sei 06 03 01 02 03
  bitspect sei --all --file sei.rbsp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd.Context())
		file, _ := cmd.Flags().GetString("file")
		offset, _ := cmd.Flags().GetInt("offset")
		all, _ := cmd.Flags().GetBool("all")

		opts := decodeOptions{
			file:     file,
			offset:   offset,
			all:      all,
			format:   cfg.Decode.Output,
			maxBytes: cfg.Decode.MaxInputBytes,
		}
		return runSEI(cmd.OutOrStdout(), loggerFrom(cmd.Context()), opts, args)
	},
}

func init() {
	rootCmd.AddCommand(seiCmd)
	seiCmd.Flags().StringP("file", "f", "", "Capture file holding raw, hex or zstd-compressed bytes")
	seiCmd.Flags().Int("offset", 0, "Offset of the first payloadType byte in the input")
	seiCmd.Flags().Bool("all", false, "Decode every message of an sei_rbsp()")
}

func runSEI(w io.Writer, logger *slog.Logger, opts decodeOptions, args []string) error {
	data, err := readSource(opts, args)
	if err != nil {
		return err
	}
	if opts.offset < 0 || opts.offset > len(data) {
		return fmt.Errorf("offset %d outside input of %d bytes", opts.offset, len(data))
	}

	if opts.all {
		msgs, err := sei.DecodeMessages(data[opts.offset:])
		if err != nil {
			return decodeFailed(logger, err)
		}
		length := 0
		for _, m := range msgs {
			length += m.Length
		}
		logger.Debug("Decoded sei_rbsp", slog.Int("messages", len(msgs)))
		return writeResult(w, opts.format, api.DecodeResult{
			Record: api.RecordSEIRBSP,
			Name:   fmt.Sprintf("%d messages", len(msgs)),
			Offset: opts.offset,
			Length: length,
			Fields: sei.Messages(msgs).Fields(),
		})
	}

	m, err := sei.Decode(data, opts.offset)
	if err != nil {
		return decodeFailed(logger, err)
	}
	logger.Debug("Decoded SEI message",
		slog.String("payload_type", m.Name()),
		slog.Int("offset", m.Offset),
	)
	return writeResult(w, opts.format, api.DecodeResult{
		Record: api.RecordSEI,
		Name:   m.Name(),
		Offset: m.Offset,
		Length: m.Length,
		Fields: m.Fields(),
	})
}

func decodeFailed(logger *slog.Logger, err error) error {
	off, _ := codec.OffsetOf(err)
	logger.Error("SEI decode failed",
		slog.Int("offset", off),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("decode failed: %w", err)
}
