package surveyload

import (
	"net/http"

	"golang.org/x/text/encoding"
)

// Option configures a Pipeline.
type Option interface {
	apply(*pipeline) error
}

type optionFunc func(*pipeline) error

func (f optionFunc) apply(p *pipeline) error {
	return f(p)
}

// WithPrettyLogging configures the Pipeline to print human friendly logs.
func WithPrettyLogging() Option {
	return optionFunc(func(p *pipeline) error {
		p.prettyLogging = true
		return nil
	})
}

// WithLogLevel sets the log level. The default is "info".
func WithLogLevel(level string) Option {
	return optionFunc(func(p *pipeline) error {
		p.logLevel = level
		return nil
	})
}

// WithHTTPClient sets the client used to fetch the export.
func WithHTTPClient(c *http.Client) Option {
	return optionFunc(func(p *pipeline) error {
		p.httpClient = c
		return nil
	})
}

// WithEncoding declares the source encoding of the export body.
func WithEncoding(enc encoding.Encoding) Option {
	return optionFunc(func(p *pipeline) error {
		p.encoding = enc
		return nil
	})
}

// WithParser replaces the default semicolon CSV parser, e.g. with XLSParser
// for workbook export settings.
func WithParser(parser Parser) Option {
	return optionFunc(func(p *pipeline) error {
		p.parser = parser
		return nil
	})
}

// WithMapping replaces the built-in column mapping.
func WithMapping(mapping []ColumnRename) Option {
	return optionFunc(func(p *pipeline) error {
		p.mapping = mapping
		return nil
	})
}

// WithNotifier sets a notifier for run results.
func WithNotifier(n Notifier) Option {
	return optionFunc(func(p *pipeline) error {
		p.notifier = n
		return nil
	})
}
