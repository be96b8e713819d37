package store

import (
	"context"

	"spoilerguard/internal/platform/store/ch"
)

// chSeam narrows *ch.CH to Clickhouse, its rows close without an error
type chSeam struct{ *ch.CH }

func (c chSeam) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := c.CH.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
