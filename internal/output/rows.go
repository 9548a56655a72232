package output

import (
	"log"
	"time"

	"github.com/mrzor/bsdproc/internal/attributes"
	"github.com/mrzor/bsdproc/internal/procmeta"
	"github.com/mrzor/bsdproc/internal/proctable"
)

// Attribute is one evaluated custom attribute.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Row is one process as printed by ps.
type Row struct {
	PID        int         `json:"pid"`
	PPID       int         `json:"ppid"`
	UID        int64       `json:"uid"`
	Comm       string      `json:"comm"`
	Start      time.Time   `json:"start"`
	Cmdline    string      `json:"cmdline,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
	Error      string      `json:"error,omitempty"`
	Issues     []string    `json:"issues,omitempty"`
}

// BuildRows turns every record of snap matching filter into a Row. m may be
// nil when no metadata was collected; filter and eval may be nil too.
// A process whose filter evaluation fails is skipped with a warning.
func BuildRows(snap *proctable.Snapshot, m *procmeta.Manager, filter *attributes.Filter, eval *attributes.Evaluator) []Row {
	rows := make([]Row, 0, snap.Len())
	for _, rec := range snap.Records() {
		subject := attributes.Subject{
			PID:  rec.PID(),
			PPID: rec.PPID(),
			UID:  int64(rec.UID()),
			Comm: rec.Comm(),
		}
		row := Row{
			PID:   subject.PID,
			PPID:  subject.PPID,
			UID:   subject.UID,
			Comm:  subject.Comm,
			Start: rec.StartTime(),
		}

		if m != nil {
			subject.Metadata = m.Get(subject.PID)
			if err := m.GetError(subject.PID); err != nil {
				row.Error = err.Error()
			}
			row.Issues = m.GetIssues(subject.PID)
		}
		if subject.Metadata != nil {
			row.Cmdline = subject.Metadata.CmdlineFull
		}

		if filter != nil {
			matched, err := filter.Match(subject)
			if err != nil {
				log.Printf("Warning: skipping pid %d, filter %q: %v", subject.PID, filter.String(), err)
				continue
			}
			if !matched {
				continue
			}
		}

		if eval != nil {
			for _, kv := range eval.Evaluate(subject) {
				row.Attributes = append(row.Attributes, Attribute{Name: string(kv.Key), Value: kv.Value.Emit()})
			}
		}

		rows = append(rows, row)
	}
	return rows
}
