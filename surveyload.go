package surveyload

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
	"golang.org/x/xerrors"
)

// Pipeline fetches one survey export and replaces the destination table
// contents with it. Every step is a single blocking call; a Run either
// succeeds or returns the first error it hits.
type Pipeline interface {
	Run(context.Context) error
}

// New builds a Pipeline from environment configuration. By default it parses
// semicolon-delimited CSV with the built-in column mapping and loads into
// PostgreSQL.
func New(cfg *Config, opts ...Option) (Pipeline, error) {
	p := &pipeline{
		source:   cfg.Source(),
		parser:   CSVParser(';'),
		mapping:  DefaultMapping(),
		logLevel: "info",
	}

	for _, o := range opts {
		if err := o.apply(p); err != nil {
			return nil, err
		}
	}

	if p.extractor == nil {
		p.extractor = newHTTPExtractor(p.source, p.httpClient)
	}
	if p.loader == nil {
		p.loader = newPostgresLoader(cfg.DSN())
	}

	logger, err := newLogger(p.prettyLogging, p.logLevel)
	if err != nil {
		return nil, err
	}
	p.logger = logger

	return p, nil
}

type pipeline struct {
	source   Source
	parser   Parser
	mapping  []ColumnRename
	encoding encoding.Encoding
	notifier Notifier

	extractor extractor
	loader    loader

	httpClient    *http.Client
	prettyLogging bool
	logLevel      string
	logger        zerolog.Logger
}

func (p *pipeline) Run(ctx context.Context) error {
	ctx = p.logger.WithContext(ctx)
	ctx = withStartedTime(ctx)

	rows, err := p.run(ctx)

	if p.notifier != nil {
		r := &Result{Source: p.source, Rows: rows, Error: err}
		if nerr := p.notifier.Notify(ctx, r); nerr != nil {
			log.Ctx(ctx).Warn().Err(nerr).Msg("failed to notify run result")
		}
	}

	return err
}

func (p *pipeline) run(ctx context.Context) (int, error) {
	l := log.Ctx(ctx)

	l.Info().Str("url", p.source.URL).Msg("survey load started")

	r, closer, err := p.extractor.extract(ctx)
	if err != nil {
		return 0, xerrors.Errorf("failed to extract: %w", err)
	}
	defer closer()

	if p.encoding != nil {
		r = transform.NewReader(r, p.encoding.NewDecoder())
	}

	frame, err := p.parser(ctx, r)
	if err != nil {
		return 0, xerrors.Errorf("failed to parse: %w", err)
	}

	l.Info().Int("rows", len(frame.Rows)).Strs("columns", frame.Columns).Msg("export parsed")

	if err := p.loader.provision(ctx); err != nil {
		return 0, xerrors.Errorf("failed to provision destination: %w", err)
	}
	defer p.loader.close(ctx)

	proj, err := project(ctx, frame, p.mapping)
	if err != nil {
		return 0, xerrors.Errorf("failed to project: %w", err)
	}

	if err := p.loader.load(ctx, proj); err != nil {
		return 0, xerrors.Errorf("failed to load: %w", err)
	}

	finished := l.Info().Int("rows", len(proj.rows))
	if t, ok := startedTimeFrom(ctx); ok {
		finished = finished.Dur("elapsed", time.Since(t))
	}
	finished.Msg("survey load finished")

	return len(proj.rows), nil
}
