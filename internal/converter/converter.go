// Package converter runs the extract, parse and serialize pipeline for one
// or many statements.
package converter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/insightdelivered/statement-converter/internal/extractor"
	"github.com/insightdelivered/statement-converter/internal/logger"
	"github.com/insightdelivered/statement-converter/internal/metrics"
	"github.com/insightdelivered/statement-converter/internal/models"
	"github.com/insightdelivered/statement-converter/internal/parser"
	"github.com/insightdelivered/statement-converter/internal/writer"
)

var (
	// ErrEmptyDocument is returned for a document with neither PDF data nor text.
	ErrEmptyDocument = errors.New("document has no content")
	// ErrExtraction wraps failures to read text out of a PDF.
	ErrExtraction = errors.New("text extraction failed")
	// ErrUnrecognizedLayout wraps parse failures on text that carries no
	// known section header or account marker at all.
	ErrUnrecognizedLayout = errors.New("statement layout not recognized")
)

// Document is one statement to convert. Data holds PDF bytes. Without
// data, Pages (text already extracted per page, e.g. by a browser) or Text
// is parsed directly.
type Document struct {
	Name  string
	Data  []byte
	Pages []string
	Text  string
}

// Options selects the rendered outputs. With no targets only the parsed
// statement is produced.
type Options struct {
	Targets []writer.Target
	Layout  writer.Layout
}

// Result is the outcome of converting one document. In batch results Err
// is set and the other fields are empty when the document failed.
type Result struct {
	DocumentID string
	Name       string
	Pages      int
	Statement  *models.Statement
	Report     *parser.Report
	Outputs    map[writer.Target][]byte
	Err        error
}

// Service converts statements. It holds no per-document state and is safe
// for concurrent use.
type Service struct {
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewService creates a Service. m may be nil to disable metrics.
func NewService(log zerolog.Logger, m *metrics.Metrics) *Service {
	return &Service{logger: log, metrics: m}
}

// Convert extracts, parses and renders a single document.
func (s *Service) Convert(ctx context.Context, doc Document, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Result{DocumentID: uuid.NewString(), Name: doc.Name}
	log := logger.FromContext(ctx, s.logger).With().
		Str("document_id", res.DocumentID).
		Str("document", doc.Name).
		Logger()

	text, pages, err := DocumentText(doc)
	if err != nil {
		s.countOutcome("extract_error")
		log.Warn().Err(err).Msg("text extraction failed")
		return nil, err
	}
	res.Pages = pages
	if s.metrics != nil && len(doc.Data) > 0 {
		s.metrics.PagesExtracted.Observe(float64(pages))
	}

	st, report, err := parser.ParseWithReport(text)
	if err != nil {
		s.countOutcome("parse_error")
		var pe *parser.ParseError
		if s.metrics != nil && errors.As(err, &pe) {
			s.metrics.ParseFailures.WithLabelValues(string(pe.Kind)).Inc()
		}
		log.Warn().Err(err).Int("pages", pages).Msg("statement parse failed")
		if !parser.Detect(text) {
			return nil, fmt.Errorf("%w: %w", ErrUnrecognizedLayout, err)
		}
		return nil, err
	}
	res.Statement = st
	res.Report = report
	s.observeReport(st, report)

	for _, skip := range report.Skipped {
		log.Debug().
			Str("rule", skip.Rule).
			Str("kind", string(skip.Kind)).
			Int("offset", skip.Offset).
			Msg("skipped match")
	}

	if len(opts.Targets) > 0 {
		res.Outputs = make(map[writer.Target][]byte, len(opts.Targets))
		for _, target := range opts.Targets {
			out, err := writer.SerializeWithOptions(st, target, writer.Options{Layout: opts.Layout})
			if err != nil {
				s.countOutcome("serialize_error")
				return nil, fmt.Errorf("failed to render %s: %w", target, err)
			}
			res.Outputs[target] = out
		}
	}

	s.countOutcome("success")
	if s.metrics != nil {
		s.metrics.ConvertDuration.Observe(time.Since(start).Seconds())
	}
	log.Info().
		Int("pages", pages).
		Int("transactions", st.TransactionCount()).
		Int("skipped", len(report.Skipped)).
		Dur("duration", time.Since(start)).
		Msg("statement converted")

	return res, nil
}

// ConvertBatch converts docs with at most workers running at once. Results
// are returned in input order; a failed document records its error in its
// Result and does not stop the others.
func (s *Service) ConvertBatch(ctx context.Context, docs []Document, opts Options, workers int) []*Result {
	if workers < 1 {
		workers = 1
	}

	results := make([]*Result, len(docs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, doc := range docs {
		g.Go(func() error {
			res, err := s.Convert(ctx, doc, opts)
			if err != nil {
				res = &Result{Name: doc.Name, Err: err}
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// DocumentText returns the flattened text of doc and its page count.
func DocumentText(doc Document) (text string, pages int, err error) {
	if len(doc.Data) > 0 {
		p, err := extractor.ExtractBytes(doc.Data)
		if err != nil {
			return "", 0, fmt.Errorf("%w: %w", ErrExtraction, err)
		}
		return extractor.JoinPages(p), len(p), nil
	}
	if len(doc.Pages) > 0 {
		return extractor.JoinPages(doc.Pages), len(doc.Pages), nil
	}
	if doc.Text != "" {
		return doc.Text, 1, nil
	}
	return "", 0, ErrEmptyDocument
}

func (s *Service) countOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.DocumentsConverted.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) observeReport(st *models.Statement, report *parser.Report) {
	if s.metrics == nil {
		return
	}
	s.metrics.TransactionsParsed.WithLabelValues(string(parser.SectionDeposits)).Add(float64(len(st.Deposits)))
	s.metrics.TransactionsParsed.WithLabelValues(string(parser.SectionATMWithdrawals)).Add(float64(len(st.ATMWithdrawals)))
	s.metrics.TransactionsParsed.WithLabelValues(string(parser.SectionChecksPaid)).Add(float64(len(st.ChecksPaid)))
	s.metrics.TransactionsParsed.WithLabelValues(string(parser.SectionCardPurchases)).Add(float64(len(st.CardPurchases)))
	for _, skip := range report.Skipped {
		s.metrics.SkippedMatches.WithLabelValues(skip.Rule).Inc()
	}
}
