// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lumen/internal/content"
	"github.com/taibuivan/lumen/internal/platform/apperr"
	"github.com/taibuivan/lumen/internal/platform/locale"
	"github.com/taibuivan/lumen/internal/platform/metrics"
	"github.com/taibuivan/lumen/pkg/pagination"
)

// failingStore fails every read.
type failingStore struct{}

func (failingStore) FindOne(context.Context, content.Query) (content.Document, error) {
	return nil, apperr.Internal(errors.New("connection reset"))
}

func (failingStore) FindPage(context.Context, content.Query) ([]content.Document, int, error) {
	return nil, 0, apperr.Internal(errors.New("connection reset"))
}

/*
TestService_GetPage walks the 23 enabled articles page by page.
*/
func TestService_GetPage(t *testing.T) {
	ctx := context.Background()
	service := content.NewService(content.Article, seedStore(t), discardLogger())

	tests := []struct {
		page       int
		docsOnPage int
		firstID    string
	}{
		{1, 10, articleID(1)},
		{2, 10, articleID(21)},
		{3, 3, articleID(41)},
	}

	for _, tt := range tests {
		result, err := service.GetPage(ctx, pagination.Request{Page: tt.page, PerPage: 10}, locale.English, false)
		require.NoError(t, err)

		assert.Equal(t, tt.docsOnPage, result.DocsOnPage)
		assert.Equal(t, 23, result.TotalDocs)
		assert.Equal(t, 3, result.TotalPages)
		assert.Equal(t, tt.page, result.CurrentPage)
		assert.Equal(t, tt.firstID, result.Data[0]["_id"])
	}

	// Past the end
	_, err := service.GetPage(ctx, pagination.Request{Page: 4, PerPage: 10}, locale.English, false)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	assert.Equal(t, "No items found", err.Error())

	// Privileged callers see disabled articles too
	result, err := service.GetPage(ctx, pagination.Request{Page: 5, PerPage: 10}, locale.English, true)
	require.NoError(t, err)
	assert.Equal(t, 46, result.TotalDocs)
	assert.Equal(t, 6, result.DocsOnPage)
}

/*
TestService_GetPage_InvalidRequest verifies bounds are checked before storage.
*/
func TestService_GetPage_InvalidRequest(t *testing.T) {
	service := content.NewService(content.Article, failingStore{}, discardLogger())

	tests := []pagination.Request{
		{Page: 1, PerPage: 0},
		{Page: 0, PerPage: 10},
		{Page: 1, PerPage: -5},
	}

	for _, req := range tests {
		_, err := service.GetPage(context.Background(), req, locale.English, false)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.CodeInvalidInput))
	}
}

/*
TestService_GetPage_Bounds verifies large page sizes and page numbers.
*/
func TestService_GetPage_Bounds(t *testing.T) {
	ctx := context.Background()
	service := content.NewService(content.Article, seedStore(t), discardLogger())

	// 1. perPage has no upper limit
	result, err := service.GetPage(ctx, pagination.Request{Page: 1, PerPage: 200}, locale.English, false)
	require.NoError(t, err)
	assert.Equal(t, 23, result.DocsOnPage)
	assert.Equal(t, 1, result.TotalPages)

	// 2. A page whose offset overflows is simply past the end
	_, err = service.GetPage(ctx, pagination.Request{Page: 100000000000000000, PerPage: 100}, locale.English, false)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	assert.Equal(t, "No items found", err.Error())
}

/*
TestService_GetByID verifies retrieval and the recorded outcomes.
*/
func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	service := content.NewService(content.Glossary, seedStore(t), discardLogger())

	notFound := metrics.RetrievalCount("glossary", content.OperationGetByID, metrics.OutcomeNotFound)
	before := testutil.ToFloat64(notFound)

	_, err := service.GetByID(ctx, articleID(1), locale.English, false)
	assert.Equal(t, "Glossary entry not found", err.Error())
	assert.Equal(t, before+1, testutil.ToFloat64(notFound))

	article := content.NewService(content.Article, seedStore(t), discardLogger())
	document, err := article.GetByID(ctx, articleID(3), locale.Polish, false)
	require.NoError(t, err)
	assert.Equal(t, "Tytuł 3", document["title"])

	// Storage failures surface as internal errors
	broken := content.NewService(content.Article, failingStore{}, discardLogger())
	failed := metrics.RetrievalCount("article", content.OperationGetByID, metrics.OutcomeError)
	before = testutil.ToFloat64(failed)

	_, err = broken.GetByID(ctx, articleID(3), locale.Polish, false)
	assert.True(t, apperr.Is(err, apperr.CodeInternal))
	assert.Equal(t, before+1, testutil.ToFloat64(failed))
}

/*
TestPageError verifies the mapping of pagination errors.
*/
func TestPageError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode string
	}{
		{pagination.ErrMissingPage, apperr.CodeInvalidInput},
		{pagination.ErrMissingPerPage, apperr.CodeInvalidInput},
		{pagination.ErrNonIntegerPage, apperr.CodeInvalidInput},
		{pagination.ErrNonIntegerPerPage, apperr.CodeInvalidInput},
		{pagination.ErrPageOutOfRange, apperr.CodeInvalidInput},
		{pagination.ErrPerPageOutOfRange, apperr.CodeInvalidInput},
		{pagination.ErrNoItems, apperr.CodeNotFound},
	}

	for _, tt := range tests {
		assert.True(t, apperr.Is(content.PageError(tt.err), tt.wantCode), tt.err.Error())
	}

	plain := errors.New("boom")
	assert.Same(t, plain, content.PageError(plain))
}
