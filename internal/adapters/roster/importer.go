// Package roster reads participant rosters and writes formed teams.
package roster

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/teammate/internal/domain/model"
	"github.com/okian/teammate/pkg/logger"
	"github.com/okian/teammate/pkg/metrics"
)

const (
	defaultWorkers = 4
	maxLineBytes   = 64 * 1024
)

// LineError reports a roster line that could not be parsed.
type LineError struct {
	Line int    `json:"line" yaml:"line"` // 1-based, header included
	Text string `json:"text" yaml:"text"`
	Err  error  `json:"-" yaml:"-"`
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error { return e.Err }

// ImportResult is the materialized outcome of one import. Participants keep
// file order.
type ImportResult struct {
	Participants []model.Participant
	Errors       []LineError
	Lines        int // data lines seen, blank lines excluded
}

// Importer parses rosters with a bounded pool of workers.
type Importer struct {
	workers int
	log     logger.Logger
}

// NewImporter creates an importer.
func NewImporter(opts ...Option) *Importer {
	i := &Importer{workers: defaultWorkers, log: logger.Nop()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type slot struct {
	p   model.Participant
	err error
}

// Import reads every line from r, skips a leading header and parses the rest
// concurrently. Malformed lines are reported in ImportResult.Errors and do not
// fail the import; only read failures and cancellation do.
func (im *Importer) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	start := time.Now()

	type numbered struct {
		n    int
		text string
	}
	var lines []numbered

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimRight(sc.Text(), "\r")
		if n == 1 && strings.Contains(strings.ToLower(text), "id") {
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, numbered{n: n, text: text})
	}
	if err := sc.Err(); err != nil {
		return ImportResult{}, fmt.Errorf("read roster: %w", err)
	}

	slots := make([]slot, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.workers)
	for idx := range lines {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := ParseLine(lines[idx].text)
			slots[idx] = slot{p: p, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ImportResult{}, fmt.Errorf("import roster: %w", err)
	}

	res := ImportResult{
		Participants: make([]model.Participant, 0, len(lines)),
		Errors:       []LineError{},
		Lines:        len(lines),
	}
	for idx, s := range slots {
		if s.err != nil {
			le := LineError{Line: lines[idx].n, Text: lines[idx].text, Err: s.err}
			res.Errors = append(res.Errors, le)
			im.log.Warn(ctx, "skipping roster line", logger.Int("line", le.Line), logger.Error(s.err))
			continue
		}
		res.Participants = append(res.Participants, s.p)
	}

	metrics.RecordImportLines("parsed", len(res.Participants))
	metrics.RecordImportLines("failed", len(res.Errors))
	metrics.RecordImportDuration(float64(time.Since(start).Microseconds()) / 1000.0)
	im.log.Debug(ctx, "roster parsed",
		logger.Int("lines", res.Lines),
		logger.Int("parsed", len(res.Participants)),
		logger.Int("failed", len(res.Errors)))
	return res, nil
}
