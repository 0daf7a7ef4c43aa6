// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"github.com/taibuivan/lumen/internal/platform/locale"
	"github.com/taibuivan/lumen/pkg/pagination"
)

// Document is one projected record, ready to be encoded as JSON.
type Document = map[string]any

// # Query Model

// ValueMode tells a store how to read a projected column.
type ValueMode int

const (
	// ValueRaw copies a scalar column value unchanged.
	ValueRaw ValueMode = iota

	// ValueMap copies a whole language map column.
	ValueMap

	// ValueLocalized reads one language out of a language map column.
	ValueLocalized
)

// Projection is one output key of a [Query].
type Projection struct {
	Key    string
	Column string
	Mode   ValueMode

	// Lang is the language read by [ValueLocalized].
	Lang locale.Lang

	// Truncate, when positive, cuts strings to that many characters. On a
	// [ValueMap] projection it cuts every language value.
	Truncate int
}

// JoinProjection embeds the related row whose id equals the parent's ForeignKey.
type JoinProjection struct {
	Key         string
	Collection  string
	ForeignKey  string
	Projections []Projection
}

// Filter restricts the rows a [Query] matches.
type Filter struct {
	// ID, when set, matches one primary key.
	ID string

	// EnabledOnly drops rows whose visibility flag is not true.
	EnabledOnly bool
}

// Query is a storage-neutral read request built from a [Descriptor].
type Query struct {
	// Resource names the collection in NOT_FOUND messages.
	Resource string

	Collection  string
	Filter      Filter
	Projections []Projection
	Joins       []JoinProjection

	// Lang is the request language the projections were resolved for.
	Lang locale.Lang

	// Privileged marks queries built for administrative callers.
	Privileged bool

	// Window bounds listing queries; rows are ordered by primary key.
	Window pagination.Window
}

// # Builder

/*
BuildSingle builds the query for one document.

Parameters:
  - descriptor: Descriptor
  - lang: locale.Lang (request language)
  - privileged: bool (administrative caller)
  - id: string (canonical primary key)

Returns:
  - Query: Matches id, and only enabled rows unless privileged
*/
func BuildSingle(descriptor Descriptor, lang locale.Lang, privileged bool, id string) Query {
	query := build(descriptor, lang, privileged, false)
	query.Filter.ID = id
	return query
}

/*
BuildListing builds the query for one page of documents.

Long text fields are cut to [TruncateLength] characters; on privileged
listings every language value is cut.
*/
func BuildListing(descriptor Descriptor, lang locale.Lang, privileged bool, req pagination.Request) Query {
	query := build(descriptor, lang, privileged, true)
	query.Window = req.Window()
	return query
}

func build(descriptor Descriptor, lang locale.Lang, privileged, listing bool) Query {
	query := Query{
		Resource:   descriptor.Resource,
		Collection: descriptor.Collection,
		Filter:     Filter{EnabledOnly: !privileged},
		Lang:       lang,
		Privileged: privileged,
	}

	for _, field := range descriptor.Fields {
		if field.Visibility == PrivilegedOnly && !privileged {
			continue
		}
		query.Projections = append(query.Projections, projectField(field, lang, privileged, listing)...)
	}

	for _, join := range descriptor.Joins {
		projected := JoinProjection{
			Key:        join.Key,
			Collection: join.Collection,
			ForeignKey: join.ForeignKey,
		}
		for _, field := range join.Fields {
			// Related documents always follow the request language.
			projected.Projections = append(projected.Projections, projectField(field, lang, false, false)...)
		}
		query.Joins = append(query.Joins, projected)
	}

	return query
}

// projectField expands one descriptor field into its output projections.
func projectField(field Field, lang locale.Lang, privileged, listing bool) []Projection {
	truncate := 0
	if listing && field.Truncate {
		truncate = TruncateLength
	}

	switch field.Localization {
	case LocalizedMap:
		if privileged {
			return []Projection{{Key: field.Key, Column: field.Column, Mode: ValueMap, Truncate: truncate}}
		}
		return []Projection{{Key: field.Key, Column: field.Column, Mode: ValueLocalized, Lang: lang, Truncate: truncate}}

	case LocalizedVariants:
		if privileged {
			projections := make([]Projection, 0, len(locale.All()))
			for _, variant := range locale.All() {
				projections = append(projections, Projection{
					Key:      field.VariantKey(variant),
					Column:   field.VariantColumn(variant),
					Truncate: truncate,
				})
			}
			return projections
		}
		return []Projection{{Key: field.Key, Column: field.VariantColumn(lang), Truncate: truncate}}

	default:
		return []Projection{{Key: field.Key, Column: field.Column, Truncate: truncate}}
	}
}
