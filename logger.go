package surveyload

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

func newLogger(pretty bool, level string) (zerolog.Logger, error) {
	lv, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, xerrors.Errorf("failed to parse log level %q: %w", level, err)
	}

	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	return zerolog.New(w).Level(lv).With().Timestamp().Logger(), nil
}
