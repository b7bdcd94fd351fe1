// SPDX-License-Identifier: MIT

package indexnow

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/idna"
	"golang.org/x/time/rate"

	"github.com/vidsite/vidsite/internal/catalog"
	vlog "github.com/vidsite/vidsite/internal/log"
	"github.com/vidsite/vidsite/internal/metrics"
	"github.com/vidsite/vidsite/internal/telemetry"
)

// ErrSiteURLMissing is returned when the notifier has no site URL.
var ErrSiteURLMissing = errors.New("site URL is not defined")

// Config configures a Notifier.
type Config struct {
	SiteURL string
	Key     string
	// ChunkSize defaults to ChunkSize.
	ChunkSize int
	// ChunkInterval is the minimum spacing between chunk submissions.
	// Zero disables pacing.
	ChunkInterval time.Duration
}

// Report summarizes one run.
type Report struct {
	Current      int // URLs in the catalog
	Pending      int // URLs not in the ledger
	Submitted    int // URLs in accepted chunks
	Chunks       int
	FailedChunks int
}

// Notifier runs one IndexNow submission cycle.
type Notifier struct {
	baseURL     string
	host        string
	key         string
	keyLocation string
	chunkSize   int
	limiter     *rate.Limiter

	source    catalog.Source
	ledger    Ledger
	submitter Submitter
	logger    zerolog.Logger
}

// NewNotifier validates cfg and wires the collaborators.
func NewNotifier(cfg Config, source catalog.Source, ledger Ledger, submitter Submitter) (*Notifier, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.SiteURL), "/")
	if base == "" {
		return nil, ErrSiteURLMissing
	}
	if err := ValidateKey(cfg.Key); err != nil {
		return nil, err
	}
	host, err := asciiHost(base)
	if err != nil {
		return nil, err
	}

	n := &Notifier{
		baseURL:     base,
		host:        host,
		key:         cfg.Key,
		keyLocation: base + "/" + KeyFileName(cfg.Key),
		chunkSize:   cfg.ChunkSize,
		source:      source,
		ledger:      ledger,
		submitter:   submitter,
		logger:      vlog.WithComponent("indexnow"),
	}
	if n.chunkSize <= 0 {
		n.chunkSize = ChunkSize
	}
	if cfg.ChunkInterval > 0 {
		n.limiter = rate.NewLimiter(rate.Every(cfg.ChunkInterval), 1)
	}
	return n, nil
}

// asciiHost extracts the hostname of base in its IDNA ASCII form.
func asciiHost(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse site URL: %w", err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("site URL %q has no host", base)
	}
	host, err := idna.Lookup.ToASCII(u.Hostname())
	if err != nil {
		return "", fmt.Errorf("convert host %q: %w", u.Hostname(), err)
	}
	return host, nil
}

// Host returns the host sent in payloads.
func (n *Notifier) Host() string { return n.host }

// KeyLocation returns the public URL of the key file.
func (n *Notifier) KeyLocation() string { return n.keyLocation }

// Run submits every catalog URL missing from the ledger, then records the
// full current URL set. Failed chunks are logged and counted but do not stop
// the run, and the ledger is updated even when chunks failed; those URLs are
// not retried on the next run.
func (n *Notifier) Run(ctx context.Context) (Report, error) {
	var report Report

	videos, err := n.source.Videos(ctx)
	if err != nil {
		return report, fmt.Errorf("load catalog: %w", err)
	}
	current := CurrentURLs(n.baseURL, videos)
	report.Current = len(current)

	previous, err := n.ledger.Load(ctx)
	if err != nil {
		n.logger.Info().
			Err(err).
			Str(vlog.FieldEvent, "indexnow.ledger_unavailable").
			Msg("no usable ledger, treating every URL as new")
		previous = nil
	}

	pending := Diff(previous, current)
	report.Pending = len(pending)

	if len(pending) == 0 {
		n.logger.Info().
			Str(vlog.FieldEvent, "indexnow.nothing_to_submit").
			Int(vlog.FieldURLCount, len(current)).
			Msg("no new or changed URLs")
	}

	for i, chunk := range Chunk(pending, n.chunkSize) {
		if n.limiter != nil {
			if err := n.limiter.Wait(ctx); err != nil {
				return report, fmt.Errorf("wait for chunk %d: %w", i+1, err)
			}
		}
		report.Chunks++
		n.submitChunk(ctx, i+1, chunk, &report)
	}

	if err := n.ledger.Save(ctx, current); err != nil {
		return report, fmt.Errorf("save ledger: %w", err)
	}
	n.logger.Info().
		Str(vlog.FieldEvent, "indexnow.ledger_saved").
		Int(vlog.FieldURLCount, len(current)).
		Int("submitted", report.Submitted).
		Int("failed_chunks", report.FailedChunks).
		Msg("indexnow ledger updated")

	return report, nil
}

func (n *Notifier) submitChunk(ctx context.Context, index int, chunk []string, report *Report) {
	logger := n.logger.With().
		Int(vlog.FieldChunk, index).
		Int(vlog.FieldURLCount, len(chunk)).
		Logger()

	ctx, span := telemetry.Tracer("vidsite/indexnow").Start(ctx, "indexnow.submit_chunk",
		trace.WithAttributes(telemetry.IndexNowAttributes(index, len(chunk), "")...))
	defer span.End()

	logger.Info().Str(vlog.FieldEvent, "indexnow.chunk_submitting").Msg("submitting chunk")

	err := n.submitter.Submit(ctx, Payload{
		Host:        n.host,
		Key:         n.key,
		KeyLocation: n.keyLocation,
		URLList:     chunk,
	})
	if err != nil {
		report.FailedChunks++
		metrics.RecordIndexNowChunk("failure", len(chunk))
		telemetry.RecordIndexNowChunk(ctx, "failure", len(chunk))
		span.RecordError(err)
		span.SetStatus(codes.Error, "chunk rejected")
		ev := logger.Error().Err(err).Str(vlog.FieldEvent, "indexnow.chunk_failed")
		var se *StatusError
		if errors.As(err, &se) {
			ev = ev.Int(vlog.FieldStatus, se.StatusCode)
		}
		ev.Msg("chunk submission failed")
		return
	}

	report.Submitted += len(chunk)
	metrics.RecordIndexNowChunk("success", len(chunk))
	telemetry.RecordIndexNowChunk(ctx, "success", len(chunk))
	logger.Info().Str(vlog.FieldEvent, "indexnow.chunk_accepted").Msg("chunk accepted")
}
