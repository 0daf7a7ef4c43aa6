// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
)

// Store executes content queries.
//
// # Contract
//
// Implementations must order listing rows by primary key and return the page
// and the total count from one consistent read. A single-document query that
// matches nothing returns an [apperr.AppError] with code NOT_FOUND; disabled
// and missing rows are indistinguishable.
type Store interface {
	// FindOne returns the single document matched by query.
	FindOne(ctx context.Context, query Query) (Document, error)

	// FindPage returns the documents inside query.Window and the number of
	// documents matching query.Filter.
	FindPage(ctx context.Context, query Query) ([]Document, int, error)
}
