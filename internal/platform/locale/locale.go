// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package locale resolves the response language of a request.

The supported set is closed: Polish and English. A header value is parsed as a
BCP 47 tag, so case differences are normalised ("EN" is English), but the tag
must be a bare language. Regional or scripted variants and weighted lists are
rejected rather than matched.
*/
package locale

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported content language code.
type Lang string

const (
	Polish  Lang = "pl"
	English Lang = "en"
)

var (
	// ErrMissing is returned when no language was supplied.
	ErrMissing = errors.New("locale: missing language")

	// ErrUnsupported is returned for any value outside the supported set.
	ErrUnsupported = errors.New("locale: unsupported language")
)

var supported = map[string]Lang{
	language.Polish.String():  Polish,
	language.English.String(): English,
}

// All returns the supported languages in a stable order.
func All() []Lang {
	return []Lang{Polish, English}
}

// Parse resolves a raw Accept-Language header value to a supported [Lang].
func Parse(raw string) (Lang, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", ErrMissing
	}

	tag, err := language.Parse(value)
	if err != nil {
		return "", ErrUnsupported
	}

	lang, ok := supported[tag.String()]
	if !ok {
		return "", ErrUnsupported
	}
	return lang, nil
}

// String implements [fmt.Stringer].
func (l Lang) String() string {
	return string(l)
}

// Suffix returns the capitalised code used by per-language output keys ("Pl", "En").
func (l Lang) Suffix() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}
