package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/sun-table-etl/internal/domain"
)

// SourceHeader names the message header that labels where a table came from.
const SourceHeader = "source"

// TableTransformer implements Transformer by decoding a USNO table document.
type TableTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates a TableTransformer.
func NewTransformer(logger *slog.Logger) *TableTransformer {
	return &TableTransformer{logger: logger}
}

// Transform parses the table held in raw.Value and returns one record per day
// of the year. The source label comes from the "source" header, falling back
// to the message key.
func (t *TableTransformer) Transform(ctx context.Context, raw domain.RawEvent) ([]domain.OutputEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rs, err := domain.ParseTable(domain.SplitLines(string(raw.Value)))
	if err != nil {
		return nil, err
	}
	source := sourceOf(raw)
	events, err := domain.SerializeResultSet(rs, source)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", source, err)
	}
	t.logger.Debug("table parsed", "source", source, "year", rs.Year(), "days", rs.Len())
	return events, nil
}

func sourceOf(raw domain.RawEvent) string {
	if s := raw.Headers[SourceHeader]; s != "" {
		return s
	}
	return string(raw.Key)
}
