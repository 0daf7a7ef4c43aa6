// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lumen/internal/content"
	"github.com/taibuivan/lumen/internal/platform/database/schema"
)

const (
	typeID    = "0190d7e4-0000-7000-8000-0000000000a1"
	creatorID = "0190d7e4-0000-7000-8000-0000000000c1"
)

// articleID returns ids that sort in the order of i.
func articleID(i int) string {
	return fmt.Sprintf("0190d7e4-5a1b-7c3d-8e4f-%012d", i)
}

func articleRow(i int, enabled bool) content.Row {
	return content.Row{
		"id":            articleID(i),
		"titlepl":       fmt.Sprintf("Tytuł %d", i),
		"titleen":       fmt.Sprintf("Title %d", i),
		"seriepart":     i,
		"content":       map[string]any{"pl": fmt.Sprintf("Treść %d", i), "en": fmt.Sprintf("Content %d", i)},
		"articletypeid": typeID,
		"creatorid":     creatorID,
		"isenabled":     enabled,
		"createdat":     "2024-05-01T10:00:00Z",
		"updatedat":     "2024-05-02T10:00:00Z",
	}
}

/*
seedStore builds the 23 enabled + 23 disabled article scenario. Odd ids are
enabled, even ids are disabled.
*/
func seedStore(t *testing.T) *content.MemoryStore {
	t.Helper()

	store := content.NewMemoryStore()
	require.NoError(t, store.Insert(schema.ContentArticleType.Table, content.Row{
		"id":          typeID,
		"name":        "Guides",
		"type":        "category",
		"icon":        "book",
		"description": map[string]any{"pl": "Poradniki", "en": "How-to guides"},
		"isenabled":   true,
	}))
	require.NoError(t, store.Insert(schema.ContentUser.Table, content.Row{
		"id":           creatorID,
		"firstname":    "Ada",
		"lastname":     "Nowak",
		"email":        "ada@lumen.app",
		"passwordhash": "x",
		"roles":        []any{"ROLE_ADMIN"},
		"isenabled":    true,
	}))

	for i := 1; i <= 46; i++ {
		require.NoError(t, store.Insert(schema.ContentArticle.Table, articleRow(i, i%2 == 1)))
	}
	return store
}
