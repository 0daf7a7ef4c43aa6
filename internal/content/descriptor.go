// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content serves the read APIs of the Lumen content collections.

Every collection (articles, article types, glossary entries, users) is
described by a [Descriptor]. One generic [Service] turns a descriptor, a
language and a privilege flag into a storage-neutral [Query], runs it against
a [Store] and returns plain documents. No collection has code of its own
beyond its descriptor.

Layout:

  - descriptor.go, entities.go: the field model and the four descriptors.
  - projection.go: the rules that turn a descriptor into a [Query].
  - store_*.go: PostgreSQL, in-memory and Redis-cached query engines.
  - service.go, http.go: retrieval and the chi handlers.
*/
package content

import (
	"github.com/taibuivan/lumen/internal/platform/locale"
)

// # Field Model

// Visibility decides which projection a field belongs to.
type Visibility int

const (
	// Public fields appear in every projection.
	Public Visibility = iota

	// PrivilegedOnly fields appear only to authorized administrative callers.
	PrivilegedOnly
)

// Localization describes how a field stores per-language values.
type Localization int

const (
	// NotLocalized fields hold one value for every language.
	NotLocalized Localization = iota

	// LocalizedMap fields hold a {"pl": ..., "en": ...} object in one column.
	LocalizedMap

	// LocalizedVariants fields keep one sibling column per language,
	// named Column + code ("titlepl", "titleen").
	LocalizedVariants
)

// TruncateLength is the listing cut-off for long text fields, in characters.
const TruncateLength = 250

// Field describes one output key of a document.
type Field struct {
	// Key is the output name.
	Key string

	// Column is the storage column, or the column prefix for variants.
	Column string

	Visibility   Visibility
	Localization Localization

	// Truncate cuts the value to [TruncateLength] characters in listings.
	Truncate bool
}

// VariantColumn returns the storage column of a variant field for lang.
func (field Field) VariantColumn(lang locale.Lang) string {
	return field.Column + string(lang)
}

// VariantKey returns the privileged output key of a variant field for lang.
func (field Field) VariantKey(lang locale.Lang) string {
	return field.Key + lang.Suffix()
}

// Join embeds at most one related document under Key.
type Join struct {
	Key        string
	Collection string

	// ForeignKey is the column of the parent row holding the related id.
	ForeignKey string

	// Fields are projected from the related row. Localized fields are always
	// resolved to the request language.
	Fields []Field
}

// # Descriptor

// Descriptor is the static description of one content collection.
type Descriptor struct {
	// Name is the route segment ("article").
	Name string

	// Resource is the human name used in error messages ("Article").
	Resource string

	// Collection is the storage table.
	Collection string

	Fields []Field
	Joins  []Join
}

// Field returns the field with the given output key.
func (descriptor Descriptor) Field(key string) (Field, bool) {
	for _, field := range descriptor.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// # Shared Columns

const (
	// ColumnID is the primary key column of every collection.
	ColumnID = "id"

	// ColumnEnabled is the visibility flag column of every collection.
	ColumnEnabled = "isenabled"

	// KeyID is the output key of the primary key.
	KeyID = "_id"

	// KeyEnabled is the output key of the visibility flag.
	KeyEnabled = "isEnabled"
)

func idField() Field {
	return Field{Key: KeyID, Column: ColumnID}
}

func enabledField() Field {
	return Field{Key: KeyEnabled, Column: ColumnEnabled, Visibility: PrivilegedOnly}
}
