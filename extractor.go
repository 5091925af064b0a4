package surveyload

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

// Source identifies the authenticated export endpoint.
type Source struct {
	URL      string
	Username string
	Password string
}

// extractor fetches the raw export body from the source.
type extractor interface {
	extract(context.Context) (io.Reader, func(), error)
}

type httpExtractor struct {
	source Source
	client *http.Client
}

func newHTTPExtractor(source Source, client *http.Client) extractor {
	if client == nil {
		client = http.DefaultClient
	}

	return &httpExtractor{source: source, client: client}
}

// extract performs one authenticated GET. Any non-200 status aborts the run;
// there is no retry.
func (e *httpExtractor) extract(ctx context.Context) (io.Reader, func(), error) {
	l := log.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.source.URL, nil)
	if err != nil {
		return nil, nil, xerrors.Errorf("failed to build export request: %w", err)
	}
	req.SetBasicAuth(e.source.Username, e.source.Password)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, nil, xerrors.Errorf("failed to fetch export from %s: %w", e.source.URL, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil, xerrors.Errorf("failed to fetch export from %s: status %d", e.source.URL, resp.StatusCode)
	}

	l.Debug().Str("url", e.source.URL).Msg("export fetched")

	return resp.Body, func() { resp.Body.Close() }, nil
}
