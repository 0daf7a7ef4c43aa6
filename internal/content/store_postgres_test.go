// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/lumen/internal/content"
	"github.com/taibuivan/lumen/internal/platform/locale"
	"github.com/taibuivan/lumen/pkg/pagination"
)

/*
TestCompileSingle verifies the public single-document statement.
*/
func TestCompileSingle(t *testing.T) {
	statement, args := content.CompileSingle(content.BuildSingle(content.Article, locale.English, false, articleID(1)))

	// 1. The language is bound once and shared with the join
	assert.Equal(t, []any{"en", articleID(1)}, args)

	// 2. Projection
	assert.True(t, strings.HasPrefix(statement, "SELECT jsonb_strip_nulls(jsonb_build_object("))
	assert.Contains(t, statement, "'title', t.titleen")
	assert.Contains(t, statement, "'content', (t.content ->> $1::text)")
	assert.NotContains(t, statement, "isenabled,")

	// 3. Joins
	assert.Contains(t, statement, "LEFT JOIN content.articletype j0 ON j0.id = t.articletypeid")
	assert.Contains(t, statement, `LEFT JOIN content."user" j1 ON j1.id = t.creatorid`)
	assert.Contains(t, statement, "'articleType', CASE WHEN j0.id IS NULL THEN NULL ELSE jsonb_build_object('_id', j0.id")
	assert.Contains(t, statement, "'description', (j0.description ->> $1::text)")

	// 4. Filter
	assert.True(t, strings.HasSuffix(statement, "WHERE t.id = $2::uuid AND t.isenabled = true"))
}

/*
TestCompileListing verifies the privileged listing statement.
*/
func TestCompileListing(t *testing.T) {
	query := content.BuildListing(content.Article, locale.Polish, true, pagination.Request{Page: 3, PerPage: 5})
	statement, args := content.CompileListing(query)

	assert.Equal(t, []any{"pl", 5, 10}, args)

	assert.Contains(t, statement, "'titlePl', t.titlepl, 'titleEn', t.titleen")
	assert.Contains(t, statement, "'content', (SELECT jsonb_object_agg(e.key, left(e.value, 250)) FROM jsonb_each_text(t.content) e)")
	assert.Contains(t, statement, "'isEnabled', t.isenabled")
	assert.Contains(t, statement, "ORDER BY t.id")
	assert.Contains(t, statement, "LIMIT $2 OFFSET $3")
	assert.Contains(t, statement, "(SELECT count(*) FROM content.article t WHERE true)")
	assert.Contains(t, statement, "COALESCE((SELECT jsonb_agg(doc ORDER BY sortkey) FROM windowed), '[]'::jsonb)")
}

/*
TestCompileListing_Public verifies truncation of the resolved language.
*/
func TestCompileListing_Public(t *testing.T) {
	query := content.BuildListing(content.Glossary, locale.English, false, pagination.Request{Page: 1, PerPage: 20})
	statement, args := content.CompileListing(query)

	assert.Equal(t, []any{"en", 20, 0}, args)
	assert.Contains(t, statement, "'explanation', left((t.explanation ->> $1::text), 250)")
	assert.Contains(t, statement, "WHERE t.isenabled = true")
}

/*
TestCompileListing_HugePage verifies that an overflowing skip never binds a negative offset.
*/
func TestCompileListing_HugePage(t *testing.T) {
	query := content.BuildListing(content.Article, locale.English, false, pagination.Request{Page: 100000000000000000, PerPage: 100})
	_, args := content.CompileListing(query)

	assert.Equal(t, []any{"en", 100, math.MaxInt}, args)
}
