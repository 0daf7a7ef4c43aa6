// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/lumen/internal/platform/dberr"
)

// Querier is the subset of pgxpool.Pool the store needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore runs content queries against PostgreSQL.
//
// Every query compiles to one statement that builds the JSON document in the
// database, so the Go side never scans individual columns.
type PostgresStore struct {
	db Querier
}

// NewPostgresStore creates a store around a pool or connection.
func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// FindOne implements [Store].
func (repository *PostgresStore) FindOne(context context.Context, query Query) (Document, error) {
	statement, args := CompileSingle(query)

	var document Document
	if err := repository.db.QueryRow(context, statement, args...).Scan(&document); err != nil {
		return nil, dberr.Wrap(err, query.Resource, "find_one")
	}
	return document, nil
}

// FindPage implements [Store]. The count and the window come from one
// statement and therefore from one snapshot.
func (repository *PostgresStore) FindPage(context context.Context, query Query) ([]Document, int, error) {
	statement, args := CompileListing(query)

	var (
		total     int
		documents []Document
	)
	if err := repository.db.QueryRow(context, statement, args...).Scan(&total, &documents); err != nil {
		return nil, 0, dberr.Wrap(err, query.Resource, "find_page")
	}
	return documents, total, nil
}

// # SQL Compilation

const (
	rootAlias = "t"
	sortAlias = "sortkey"
)

// CompileSingle returns the statement and arguments of a single-document query.
func CompileSingle(query Query) (string, []any) {
	args := &argList{}
	document := documentExpr(query, args)
	joins := joinClauses(query)
	where := whereClause(query, args)

	statement := fmt.Sprintf(`SELECT %s FROM %s %s%s WHERE %s`,
		document, query.Collection, rootAlias, joins, where)

	return statement, args.values
}

// CompileListing returns the statement and arguments of a listing query.
//
// The result row holds the filtered count and a JSON array of the window,
// ordered by primary key.
func CompileListing(query Query) (string, []any) {
	args := &argList{}
	document := documentExpr(query, args)
	joins := joinClauses(query)
	where := whereClause(query, args)
	limit := args.add(query.Window.Limit)
	offset := args.add(query.Window.Skip)

	statement := fmt.Sprintf(`WITH windowed AS (
	SELECT %[1]s.%[2]s AS %[3]s, %[4]s AS doc
	FROM %[5]s %[1]s%[6]s
	WHERE %[7]s
	ORDER BY %[1]s.%[2]s
	LIMIT %[8]s OFFSET %[9]s
)
SELECT
	(SELECT count(*) FROM %[5]s %[1]s WHERE %[7]s),
	COALESCE((SELECT jsonb_agg(doc ORDER BY %[3]s) FROM windowed), '[]'::jsonb)`,
		rootAlias, ColumnID, sortAlias, document, query.Collection, joins, where, limit, offset)

	return statement, args.values
}

// documentExpr builds the jsonb expression of one result document. Null
// values and unmatched joins are stripped from the output.
func documentExpr(query Query, args *argList) string {
	pairs := make([]string, 0, len(query.Projections)+len(query.Joins))
	for _, projection := range query.Projections {
		pairs = append(pairs, quoteKey(projection.Key), valueExpr(rootAlias, projection, args))
	}

	for index, join := range query.Joins {
		alias := joinAlias(index)
		inner := make([]string, 0, len(join.Projections)*2)
		for _, projection := range join.Projections {
			inner = append(inner, quoteKey(projection.Key), valueExpr(alias, projection, args))
		}
		embedded := fmt.Sprintf("CASE WHEN %s.%s IS NULL THEN NULL ELSE jsonb_build_object(%s) END",
			alias, ColumnID, strings.Join(inner, ", "))
		pairs = append(pairs, quoteKey(join.Key), embedded)
	}

	return fmt.Sprintf("jsonb_strip_nulls(jsonb_build_object(%s))", strings.Join(pairs, ", "))
}

// valueExpr reads one projected column of the row aliased alias.
func valueExpr(alias string, projection Projection, args *argList) string {
	column := alias + "." + projection.Column

	switch projection.Mode {
	case ValueLocalized:
		expr := fmt.Sprintf("(%s ->> %s::text)", column, args.lang(projection.Lang))
		return truncated(expr, projection.Truncate)

	case ValueMap:
		if projection.Truncate <= 0 {
			return column
		}
		return fmt.Sprintf("(SELECT jsonb_object_agg(e.key, left(e.value, %d)) FROM jsonb_each_text(%s) e)",
			projection.Truncate, column)

	default:
		return truncated(column, projection.Truncate)
	}
}

func truncated(expr string, length int) string {
	if length <= 0 {
		return expr
	}
	return fmt.Sprintf("left(%s, %d)", expr, length)
}

func joinClauses(query Query) string {
	var builder strings.Builder
	for index, join := range query.Joins {
		alias := joinAlias(index)
		fmt.Fprintf(&builder, "\n\tLEFT JOIN %s %s ON %s.%s = %s.%s",
			join.Collection, alias, alias, ColumnID, rootAlias, join.ForeignKey)
	}
	return builder.String()
}

func whereClause(query Query, args *argList) string {
	conditions := make([]string, 0, 2)
	if query.Filter.ID != "" {
		conditions = append(conditions, fmt.Sprintf("%s.%s = %s::uuid", rootAlias, ColumnID, args.add(query.Filter.ID)))
	}
	if query.Filter.EnabledOnly {
		conditions = append(conditions, fmt.Sprintf("%s.%s = true", rootAlias, ColumnEnabled))
	}
	if len(conditions) == 0 {
		return "true"
	}
	return strings.Join(conditions, " AND ")
}

func joinAlias(index int) string {
	return "j" + strconv.Itoa(index)
}

// quoteKey renders an output key as a SQL string literal.
func quoteKey(key string) string {
	return "'" + strings.ReplaceAll(key, "'", "''") + "'"
}

// argList collects positional arguments. The language is bound once and its
// placeholder reused.
type argList struct {
	values      []any
	langHolders map[string]string
}

func (list *argList) add(value any) string {
	list.values = append(list.values, value)
	return "$" + strconv.Itoa(len(list.values))
}

func (list *argList) lang(value fmt.Stringer) string {
	if placeholder, ok := list.langHolders[value.String()]; ok {
		return placeholder
	}
	if list.langHolders == nil {
		list.langHolders = make(map[string]string)
	}
	placeholder := list.add(value.String())
	list.langHolders[value.String()] = placeholder
	return placeholder
}
