package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ssargent/bitspect/pkg/api"
	"github.com/ssargent/bitspect/pkg/lookup"
	"github.com/ssargent/bitspect/pkg/tree"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// writeResult prints a decoded record as an aligned field tree or as JSON
// in the shape the decode API returns.
func writeResult(w io.Writer, format string, res api.DecodeResult) error {
	if format == formatJSON {
		return writeJSON(w, res)
	}

	fmt.Fprintf(w, "%s (%s at offset %d, %d bytes)\n", res.Name, res.Record, res.Offset, res.Length)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	tree.Walk(res.Fields, func(depth int, f tree.Field) {
		fmt.Fprintf(tw, "%s%s\t%s\t%s\n", strings.Repeat("  ", depth), f.Label, formatValue(f.Value), f.Description)
	})
	return tw.Flush()
}

func writeTables(w io.Writer, format string, tables []lookup.Lister) error {
	summaries := make([]api.TableSummary, 0, len(tables))
	for _, t := range tables {
		summaries = append(summaries, api.TableSummary{Name: t.Name(), Fallback: t.Fallback(), Entries: t.Len()})
	}
	if format == formatJSON {
		return writeJSON(w, summaries)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tENTRIES\tFALLBACK")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Name, s.Entries, s.Fallback)
	}
	return tw.Flush()
}

func writeTable(w io.Writer, format string, t lookup.Lister) error {
	rows := t.Rows()
	if format == formatJSON {
		return writeJSON(w, api.TableResponse{
			TableSummary: api.TableSummary{Name: t.Name(), Fallback: t.Fallback(), Entries: t.Len()},
			Rows:         rows,
		})
	}

	fmt.Fprintf(w, "%s (fallback %q)\n", t.Name(), t.Fallback())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t0x%02x\t%s\n", r.Code, r.Code, r.Label)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		if len(v) == 0 {
			return "(empty)"
		}
		return fmt.Sprintf("% x", v)
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}
