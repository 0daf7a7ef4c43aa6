// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/lumen/internal/platform/apperr"
)

// Row is one stored record keyed by column name.
type Row = map[string]any

// MemoryStore evaluates content queries over rows held in memory.
//
// It mirrors the PostgreSQL store: rows are ordered by primary key, unmatched
// joins and missing values are left out of documents, and truncation counts
// characters. It backs the memory storage driver and the package tests.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Row
	index       map[string]map[string]Row
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]Row),
		index:       make(map[string]map[string]Row),
	}
}

// Insert adds rows to a collection, keeping primary key order.
// Every row must carry a string id; duplicates are rejected.
func (store *MemoryStore) Insert(collection string, rows ...Row) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	byID := store.index[collection]
	if byID == nil {
		byID = make(map[string]Row)
		store.index[collection] = byID
	}

	for _, row := range rows {
		id, ok := row[ColumnID].(string)
		if !ok || id == "" {
			return fmt.Errorf("content: %s row without id", collection)
		}
		id = strings.ToLower(id)
		if _, exists := byID[id]; exists {
			return apperr.Conflict(fmt.Sprintf("duplicate id %s in %s", id, collection))
		}
		row[ColumnID] = id
		byID[id] = row
		store.collections[collection] = append(store.collections[collection], row)
	}

	sort.SliceStable(store.collections[collection], func(i, j int) bool {
		return store.collections[collection][i][ColumnID].(string) < store.collections[collection][j][ColumnID].(string)
	})
	return nil
}

// Lookup returns the first row of collection whose column equals value.
func (store *MemoryStore) Lookup(collection, column string, value any) (Row, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	for _, row := range store.collections[collection] {
		if row[column] == value {
			return row, true
		}
	}
	return nil, false
}

// Update applies changes to the row of collection with the given id.
func (store *MemoryStore) Update(collection, id string, changes Row) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	row, ok := store.index[collection][strings.ToLower(id)]
	if !ok {
		return false
	}
	for column, value := range changes {
		row[column] = value
	}
	return true
}

// FindOne implements [Store].
func (store *MemoryStore) FindOne(ctx context.Context, query Query) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.Internal(err)
	}

	store.mu.RLock()
	defer store.mu.RUnlock()

	row, ok := store.index[query.Collection][query.Filter.ID]
	if !ok || !matches(row, query.Filter) {
		return nil, apperr.NotFound(query.Resource)
	}
	return store.project(row, query), nil
}

// FindPage implements [Store].
func (store *MemoryStore) FindPage(ctx context.Context, query Query) ([]Document, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, apperr.Internal(err)
	}

	store.mu.RLock()
	defer store.mu.RUnlock()

	rows := store.collections[query.Collection]
	total := 0
	documents := make([]Document, 0, min(query.Window.Limit, len(rows)))
	for _, row := range rows {
		if !matches(row, query.Filter) {
			continue
		}
		if total >= query.Window.Skip && len(documents) < query.Window.Limit {
			documents = append(documents, store.project(row, query))
		}
		total++
	}
	return documents, total, nil
}

// # Evaluation

func matches(row Row, filter Filter) bool {
	if filter.ID != "" && row[ColumnID] != filter.ID {
		return false
	}
	if filter.EnabledOnly {
		enabled, _ := row[ColumnEnabled].(bool)
		return enabled
	}
	return true
}

// project must run under the read lock.
func (store *MemoryStore) project(row Row, query Query) Document {
	document := projectRow(row, query.Projections)

	for _, join := range query.Joins {
		foreignID, _ := row[join.ForeignKey].(string)
		related, ok := store.index[join.Collection][strings.ToLower(foreignID)]
		if !ok {
			continue
		}
		document[join.Key] = projectRow(related, join.Projections)
	}
	return document
}

func projectRow(row Row, projections []Projection) Document {
	document := make(Document, len(projections))
	for _, projection := range projections {
		if value, ok := projectValue(row[projection.Column], projection); ok {
			document[projection.Key] = value
		}
	}
	return document
}

// projectValue reports false when the value is absent from the output.
func projectValue(value any, projection Projection) (any, bool) {
	if value == nil {
		return nil, false
	}

	switch projection.Mode {
	case ValueLocalized:
		translations, ok := asLanguageMap(value)
		if !ok {
			return nil, false
		}
		text, ok := translations[projection.Lang.String()]
		if !ok {
			return nil, false
		}
		return truncateRunes(text, projection.Truncate), true

	case ValueMap:
		translations, ok := asLanguageMap(value)
		if !ok {
			return nil, false
		}
		copied := make(map[string]string, len(translations))
		for lang, text := range translations {
			copied[lang] = truncateRunes(text, projection.Truncate)
		}
		return copied, true

	default:
		if text, ok := value.(string); ok {
			return truncateRunes(text, projection.Truncate), true
		}
		return value, true
	}
}

func asLanguageMap(value any) (map[string]string, bool) {
	switch typed := value.(type) {
	case map[string]string:
		return typed, true
	case map[string]any:
		converted := make(map[string]string, len(typed))
		for lang, text := range typed {
			if s, ok := text.(string); ok {
				converted[lang] = s
			}
		}
		return converted, true
	default:
		return nil, false
	}
}

func truncateRunes(text string, length int) string {
	if length <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length])
}
