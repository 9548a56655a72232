package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mrzor/bsdproc/internal/liveness"

	"github.com/olekukonko/tablewriter"
)

// Formatter writes command results to w.
type Formatter interface {
	// Rows writes the process listing.
	Rows(w io.Writer, rows []Row) error
	// Strings writes an argument or environment vector.
	Strings(w io.Writer, values []string) error
	// State writes the liveness of pid.
	State(w io.Writer, pid int, state liveness.State) error
}

// New returns the JSON formatter when asJSON is set and the table formatter
// otherwise. columns are the custom attribute names, in command-line order.
func New(asJSON bool, columns []string) Formatter {
	if asJSON {
		return JSONFormatter{}
	}
	return TableFormatter{Columns: columns}
}

// TableFormatter writes borderless aligned columns.
type TableFormatter struct {
	// Columns are the custom attributes shown after the fixed columns.
	Columns []string
}

// attributeColumns expands declared into table columns. A map-valued
// attribute becomes one column per key seen in rows, in key order; any
// other attribute keeps its single column even when no row has a value.
func attributeColumns(declared []string, rows []Row) []string {
	present := make(map[string]bool)
	for _, row := range rows {
		for _, attr := range row.Attributes {
			present[attr.Name] = true
		}
	}

	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, d := range declared {
		var expanded []string
		for name := range present {
			if strings.HasPrefix(name, d+".") {
				expanded = append(expanded, name)
			}
		}
		sort.Strings(expanded)

		if present[d] || len(expanded) == 0 {
			add(d)
		}
		for _, name := range expanded {
			add(name)
		}
	}
	return names
}

func (f TableFormatter) Rows(w io.Writer, rows []Row) error {
	extra := attributeColumns(f.Columns, rows)

	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)

	table.SetHeader(append([]string{"PID", "PPID", "UID", "COMM", "STARTED", "COMMAND"}, extra...))

	for _, row := range rows {
		command := row.Cmdline
		if row.Error != "" {
			command = "[" + row.Comm + "]"
		}

		values := make(map[string]string, len(row.Attributes))
		for _, attr := range row.Attributes {
			values[attr.Name] = attr.Value
		}

		line := []string{
			strconv.Itoa(row.PID),
			strconv.Itoa(row.PPID),
			strconv.FormatInt(row.UID, 10),
			row.Comm,
			row.Start.Local().Format(time.DateTime),
			command,
		}
		for _, name := range extra {
			line = append(line, values[name])
		}
		table.Append(line)
	}

	table.Render()
	return nil
}

func (TableFormatter) Strings(w io.Writer, values []string) error {
	for _, v := range values {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}

func (TableFormatter) State(w io.Writer, pid int, state liveness.State) error {
	_, err := fmt.Fprintf(w, "%d %s\n", pid, state)
	return err
}

// JSONFormatter writes one indented JSON document per call.
type JSONFormatter struct{}

func (JSONFormatter) encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func (f JSONFormatter) Rows(w io.Writer, rows []Row) error {
	return f.encode(w, rows)
}

func (f JSONFormatter) Strings(w io.Writer, values []string) error {
	if values == nil {
		values = []string{}
	}
	return f.encode(w, values)
}

func (f JSONFormatter) State(w io.Writer, pid int, state liveness.State) error {
	return f.encode(w, struct {
		PID   int    `json:"pid"`
		State string `json:"state"`
	}{PID: pid, State: state.String()})
}
