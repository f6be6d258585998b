package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ssargent/bitspect/pkg/descriptor"
	"github.com/ssargent/bitspect/pkg/lookup"
	"github.com/ssargent/bitspect/pkg/sei"
)

// tablesCmd represents the tables command
var tablesCmd = &cobra.Command{
	Use:   "tables [name]",
	Short: "List the code tables used to label decoded fields",
	Long: `Without arguments, list every lookup table with its size and fallback
label. With a table name, print the table's codes and labels.

Examples:
  bitspect tables
  bitspect tables sei_payload_type`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd.Context())
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		return runTables(cmd.OutOrStdout(), cfg.Decode.Output, name)
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func allTables() []lookup.Lister {
	return append(descriptor.Tables(), sei.Tables()...)
}

func runTables(w io.Writer, format, name string) error {
	tables := allTables()
	if name == "" {
		return writeTables(w, format, tables)
	}
	t, ok := lookup.Find(name, tables...)
	if !ok {
		return fmt.Errorf("unknown table %q", name)
	}
	return writeTable(w, format, t)
}
