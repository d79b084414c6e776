// Package importer resolves batches of pasted links and stores the new ones.
package importer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yogansh2008/AutoAttendDevArc/attend"
	"github.com/yogansh2008/AutoAttendDevArc/attend/platform"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// maxLineSize bounds a single input line.
const maxLineSize = 64 * 1024

// Status is the outcome of one imported line.
type Status string

const (
	StatusAccepted  Status = "accepted"
	StatusDuplicate Status = "duplicate"
	StatusRejected  Status = "rejected"
)

// Request describes one import batch.
type Request struct {
	// Platform resolves every line with the named platform or alias.
	// Empty detects the platform per line.
	Platform string
	// Source is stored with every accepted record.
	Source string
	Reader io.Reader
	// DryRun resolves and deduplicates within the batch without saving.
	DryRun bool
}

// Line is the result for one non-blank input line.
type Line struct {
	Number int
	Input  string
	Status Status
	Link   platform.Link
	// Record is set for accepted and duplicate lines unless DryRun.
	Record *attend.MeetingRecord
	Err    error
}

// Report lists every processed line in input order.
type Report struct {
	Lines      []Line
	Accepted   int
	Duplicates int
	Rejected   int
}

// Importer resolves lines on a worker pool and saves new links.
type Importer struct {
	manager platform.Manager
	repo    attend.MeetingRepository
	pool    attend.WorkerPool
	logger  attend.Logger
	limiter *rate.Limiter
}

// Option configures an Importer.
type Option func(*Importer)

// WithRateLimit throttles line resolution to perSec lines per second.
// A non-positive perSec leaves the importer unthrottled.
func WithRateLimit(perSec float64, burst int) Option {
	return func(i *Importer) {
		if perSec <= 0 {
			i.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		i.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

// New creates an Importer. repo may be nil when only dry runs are made.
func New(manager platform.Manager, repo attend.MeetingRepository, pool attend.WorkerPool, logger attend.Logger, opts ...Option) *Importer {
	i := &Importer{
		manager: manager,
		repo:    repo,
		pool:    pool,
		logger:  logger.With("component", "importer"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type pending struct {
	number int
	input  string
}

// Import resolves every line of req.Reader and saves the links that are
// neither repeated earlier in the batch nor already stored. Lines that are
// blank or start with '#' are skipped. An error is returned only when the
// batch itself cannot be processed; per-line failures are in the report.
func (i *Importer) Import(ctx context.Context, req Request) (*Report, error) {
	if req.Reader == nil {
		return nil, errors.New("import reader required")
	}
	if !req.DryRun && i.repo == nil {
		return nil, errors.New("import repository required")
	}

	platformName := strings.TrimSpace(req.Platform)
	if platformName != "" {
		canonical, ok := i.manager.ResolveAlias(platformName)
		if !ok {
			return nil, platform.NewUnknownPlatformError(platformName, "")
		}
		platformName = canonical
	}

	lines, err := readLines(req.Reader)
	if err != nil {
		return nil, fmt.Errorf("read import input: %w", err)
	}

	results, err := i.resolveAll(ctx, platformName, lines)
	if err != nil {
		return nil, err
	}

	report := &Report{Lines: results}
	seen := make(map[string]int, len(results))
	for idx := range report.Lines {
		line := &report.Lines[idx]
		if line.Err != nil {
			line.Status = StatusRejected
			report.Rejected++
			continue
		}

		key := line.Link.Key()
		if first, dup := seen[key]; dup {
			line.Status = StatusDuplicate
			line.Record = report.Lines[first].Record
			report.Duplicates++
			continue
		}
		seen[key] = idx

		if req.DryRun {
			line.Status = StatusAccepted
			report.Accepted++
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record := &attend.MeetingRecord{
			Platform:     line.Link.Platform,
			Kind:         line.Link.Kind.String(),
			ExternalID:   line.Link.ID,
			CanonicalURL: line.Link.URL,
			RawInput:     line.Input,
			Source:       req.Source,
		}
		created, err := i.repo.Save(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line.Number, err)
		}
		line.Record = record
		if created {
			line.Status = StatusAccepted
			report.Accepted++
		} else {
			line.Status = StatusDuplicate
			report.Duplicates++
		}
	}

	i.logger.Info("import finished",
		"platform", platformName,
		"source", req.Source,
		"lines", len(report.Lines),
		"accepted", report.Accepted,
		"duplicates", report.Duplicates,
		"rejected", report.Rejected,
		"dry_run", req.DryRun,
	)
	return report, nil
}

func (i *Importer) resolveAll(ctx context.Context, platformName string, lines []pending) ([]Line, error) {
	results := make([]Line, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	if i.pool != nil {
		g.SetLimit(i.pool.Size())
	}

	var waitErr error
	for idx, p := range lines {
		idx, p := idx, p
		if i.limiter != nil {
			if waitErr = i.limiter.Wait(gctx); waitErr != nil {
				break
			}
		}
		g.Go(func() error {
			task := func() error {
				results[idx] = i.resolveLine(platformName, p)
				return nil
			}
			if i.pool == nil {
				return task()
			}
			return i.pool.SubmitWait(gctx, task)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve import lines: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if waitErr != nil {
		return nil, fmt.Errorf("import rate limit: %w", waitErr)
	}
	return results, nil
}

func (i *Importer) resolveLine(platformName string, p pending) Line {
	line := Line{Number: p.number, Input: p.input}
	var err error
	if platformName != "" {
		line.Link, err = i.manager.Resolve(platformName, p.input)
	} else {
		line.Link, err = i.manager.Detect(p.input)
	}
	if err != nil {
		line.Err = err
		i.logger.Debug("line rejected", "line", p.number, "error", err)
	}
	return line
}

func readLines(r io.Reader) ([]pending, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	var lines []pending
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, pending{number: number, input: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
