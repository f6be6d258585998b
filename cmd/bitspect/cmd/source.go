package cmd

import (
	"errors"
	"strings"

	"github.com/ssargent/bitspect/pkg/input"
)

// decodeOptions are the flags shared by the decode commands
type decodeOptions struct {
	file     string
	offset   int
	all      bool
	format   string
	maxBytes int64
}

// readSource returns the bytes named by --file or given as hex arguments
func readSource(opts decodeOptions, args []string) ([]byte, error) {
	if opts.file != "" {
		if len(args) > 0 {
			return nil, errors.New("give either --file or hex arguments, not both")
		}
		return input.LoadFile(opts.file, opts.maxBytes)
	}
	if len(args) == 0 {
		return nil, errors.New("no input: pass hex bytes as arguments or use --file")
	}
	data, err := input.ParseHex(strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	if opts.maxBytes > 0 && int64(len(data)) > opts.maxBytes {
		return nil, input.ErrTooLarge
	}
	return data, nil
}
