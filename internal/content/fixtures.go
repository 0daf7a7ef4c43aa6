// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/lumen/internal/platform/database/schema"
	"github.com/taibuivan/lumen/internal/platform/locale"
	"github.com/taibuivan/lumen/internal/platform/sec"
	"github.com/taibuivan/lumen/internal/platform/validate"
)

const (
	// FixtureExt is the extension of fixture files.
	FixtureExt = ".yaml"

	// FixturePassword is a plain-text user column hashed into the password
	// hash on load. It is never stored.
	FixturePassword = "password"
)

// rowValidators checks fixture rows per collection before they are stored.
var rowValidators = map[string]func(Row) error{
	schema.ContentArticle.Table:     validateArticle,
	schema.ContentArticleType.Table: validateArticleType,
	schema.ContentGlossary.Table:    validateGlossary,
	schema.ContentUser.Table:        validateUser,
}

/*
LoadFixtures fills a MemoryStore from one YAML file per descriptor.

Each file is named after the descriptor (article.yaml, user.yaml, ...) and
holds a list of rows keyed by storage column. A missing file leaves the
collection empty.

Parameters:
  - dir: string (fixture directory)
  - descriptors: ...Descriptor (defaults to [Descriptors])

Returns:
  - *MemoryStore: The populated store
  - error: Read, decode or validation failure naming the file and row
*/
func LoadFixtures(dir string, descriptors ...Descriptor) (*MemoryStore, error) {
	if len(descriptors) == 0 {
		descriptors = Descriptors()
	}

	store := NewMemoryStore()
	for _, descriptor := range descriptors {
		path := filepath.Join(dir, descriptor.Name+FixtureExt)

		raw, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fixtures: read %s: %w", path, err)
		}

		rows, err := DecodeRows(raw, descriptor.Collection)
		if err != nil {
			return nil, fmt.Errorf("fixtures: %s: %w", path, err)
		}
		if err := store.Insert(descriptor.Collection, rows...); err != nil {
			return nil, fmt.Errorf("fixtures: %s: %w", path, err)
		}
	}
	return store, nil
}

// DecodeRows parses a YAML list of rows and validates each one for collection.
func DecodeRows(raw []byte, collection string) ([]Row, error) {
	var rows []Row
	if err := yaml.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	check := rowValidators[collection]
	for index, row := range rows {
		if collection == schema.ContentUser.Table {
			if err := hashFixturePassword(row); err != nil {
				return nil, fmt.Errorf("row %d: %w", index, err)
			}
		}
		if check == nil {
			continue
		}
		if err := check(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", index, err)
		}
	}
	return rows, nil
}

// hashFixturePassword replaces a plain-text password with its bcrypt hash.
func hashFixturePassword(row Row) error {
	plain, ok := row[FixturePassword].(string)
	if !ok {
		return nil
	}
	delete(row, FixturePassword)

	hash, err := sec.HashPassword(plain)
	if err != nil {
		return err
	}
	row[schema.ContentUser.PasswordHash] = hash
	return nil
}

// # Row Rules

func languages() []string {
	all := locale.All()
	codes := make([]string, 0, len(all))
	for _, lang := range all {
		codes = append(codes, lang.String())
	}
	return codes
}

func text(row Row, column string) string {
	value, _ := row[column].(string)
	return value
}

func translations(row Row, column string) map[string]string {
	values, _ := asLanguageMap(row[column])
	return values
}

func validateArticle(row Row) error {
	columns := schema.ContentArticle
	validator := &validate.Validator{}
	validator.UUID(ColumnID, text(row, ColumnID))

	for _, lang := range locale.All() {
		column := columns.Title + lang.String()
		validator.LenBetween(column, text(row, column), 5, 255)
	}

	validator.UUID(columns.ArticleTypeID, text(row, columns.ArticleTypeID)).
		UUID(columns.CreatorID, text(row, columns.CreatorID)).
		Localized(columns.Content, translations(row, columns.Content), languages()...)

	return validator.Err()
}

func validateArticleType(row Row) error {
	columns := schema.ContentArticleType
	validator := &validate.Validator{}
	validator.UUID(ColumnID, text(row, ColumnID)).
		LenBetween(columns.Name, text(row, columns.Name), 2, 20).
		OneOf(columns.Type, text(row, columns.Type), "category", "serie").
		Localized(columns.Description, translations(row, columns.Description), languages()...)

	return validator.Err()
}

func validateGlossary(row Row) error {
	columns := schema.ContentGlossary
	abbreviation := text(row, columns.Abbreviation)
	phrase := text(row, columns.Phrase)

	validator := &validate.Validator{}
	validator.UUID(ColumnID, text(row, ColumnID)).
		Custom(columns.Abbreviation, abbreviation == "" && phrase == "", "Abbreviation or phrase is required")

	if abbreviation != "" {
		validator.LenBetween(columns.Abbreviation, abbreviation, 2, 10)
	}
	if phrase != "" {
		validator.LenBetween(columns.Phrase, phrase, 2, 100)
	}

	validator.Localized(columns.Explanation, translations(row, columns.Explanation), languages()...)
	return validator.Err()
}

func validateUser(row Row) error {
	columns := schema.ContentUser
	validator := &validate.Validator{}
	validator.UUID(ColumnID, text(row, ColumnID)).
		LenBetween(columns.FirstName, text(row, columns.FirstName), 2, 50).
		LenBetween(columns.LastName, text(row, columns.LastName), 2, 50).
		Email(columns.Email, text(row, columns.Email)).
		Required(columns.PasswordHash, text(row, columns.PasswordHash))

	return validator.Err()
}
