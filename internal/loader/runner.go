// Package loader drives a single batch run: it walks the CSV source row by
// row, builds each payload, dispatches the PUT, and reports every outcome on
// one console line.
//
// Error policy follows the batch contract: payload-construction failures and
// a missing id-column abort the whole run at the offending row, while
// transport failures and non-2xx responses are reported and the run carries
// on to the next row.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/JonMunkholm/resourceload/internal/client"
	"github.com/JonMunkholm/resourceload/internal/csvsource"
	"github.com/JonMunkholm/resourceload/internal/payload"
)

// maxBodyReport caps how much of an error response body is echoed per row.
const maxBodyReport = 500

// MissingColumnError reports that the configured id-column does not exist in
// the CSV header.
type MissingColumnError struct {
	Column  string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("configured id-column %q not found in CSV columns: %v",
		e.Column, e.Columns)
}

// Stats counts per-row outcomes for the run summary.
type Stats struct {
	Rows      int
	Succeeded int
	Failed    int
	Transport int
	Previewed int
}

// Runner processes one CSV file against one API endpoint. Rows are handled
// strictly in file order, one in flight at a time.
type Runner struct {
	Source     *csvsource.Source
	Build      payload.BuildFunc
	Dispatcher *client.Dispatcher
	Out        io.Writer
	Log        *slog.Logger

	APIURL     string
	IDColumn   string
	ResourceID string
	DryRun     bool
}

// Run processes every row and returns the first fatal error, or nil once the
// last row has been attempted. Per-row transport and HTTP failures are
// reported on Out but never returned.
func (r *Runner) Run(ctx context.Context) (*Stats, error) {
	columns := r.Source.Columns()
	fmt.Fprintf(r.Out, "Fields detected in CSV: %v\n", columns)
	r.Log.Info("starting run", "columns", len(columns), "dry_run", r.DryRun)

	stats := &Stats{}
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		rec, err := r.Source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}
		stats.Rows++

		url := r.APIURL
		if r.IDColumn != "" {
			v, ok := rec[r.IDColumn]
			if !ok {
				return stats, &MissingColumnError{Column: r.IDColumn, Columns: columns}
			}
			url = client.JoinID(r.APIURL, v)
		}

		built, err := r.Build(rec, columns, r.ResourceID)
		if err != nil {
			return stats, fmt.Errorf("row #%d: %w", stats.Rows, err)
		}
		body, err := json.Marshal(built)
		if err != nil {
			return stats, fmt.Errorf("row #%d: encoding payload: %w", stats.Rows, err)
		}

		if r.DryRun {
			r.preview(stats.Rows, url, body)
			stats.Previewed++
			continue
		}

		res, err := r.Dispatcher.Put(ctx, url, body)
		if err != nil {
			fmt.Fprintf(r.Out, "[ERROR] Row #%d: request failed: %v\n", stats.Rows, err)
			stats.Transport++
			continue
		}

		if res.OK() {
			fmt.Fprintf(r.Out, "[OK] Row #%d -> %s (status %d)\n",
				stats.Rows, url, res.StatusCode)
			stats.Succeeded++
		} else {
			fmt.Fprintf(r.Out, "[FAIL] Row #%d -> %s (status %d) Response: %s\n",
				stats.Rows, url, res.StatusCode, truncate(res.Body, maxBodyReport))
			stats.Failed++
		}
	}

	r.Log.Info("run complete",
		"rows", stats.Rows,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"transport_errors", stats.Transport,
		"previewed", stats.Previewed,
	)
	return stats, nil
}

// preview prints the dry-run block: the intended request line and the
// pretty-printed payload.
func (r *Runner) preview(row int, url string, body []byte) {
	fmt.Fprintf(r.Out, "\n[DRY RUN] Row #%d\nPUT %s\nPayload:\n", row, url)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Fprintln(r.Out, string(body))
		return
	}
	fmt.Fprintln(r.Out, pretty.String())
}

// truncate limits s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
