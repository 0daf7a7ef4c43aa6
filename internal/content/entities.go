// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"github.com/taibuivan/lumen/internal/platform/database/schema"
)

// # Shared Joins

// creatorJoin embeds the author of a document.
func creatorJoin(foreignKey string) Join {
	return Join{
		Key:        "creator",
		Collection: schema.ContentUser.Table,
		ForeignKey: foreignKey,
		Fields: []Field{
			idField(),
			{Key: "firstName", Column: schema.ContentUser.FirstName},
			{Key: "lastName", Column: schema.ContentUser.LastName},
		},
	}
}

// # Collections

// Article describes the content.article collection.
var Article = Descriptor{
	Name:       "article",
	Resource:   "Article",
	Collection: schema.ContentArticle.Table,
	Fields: []Field{
		idField(),
		{Key: "title", Column: schema.ContentArticle.Title, Localization: LocalizedVariants},
		{Key: "seriePart", Column: schema.ContentArticle.SeriePart},
		{Key: "content", Column: schema.ContentArticle.Content, Localization: LocalizedMap, Truncate: true},
		{Key: "createdAt", Column: schema.ContentArticle.CreatedAt},
		{Key: "updatedAt", Column: schema.ContentArticle.UpdatedAt},
		enabledField(),
	},
	Joins: []Join{
		{
			Key:        "articleType",
			Collection: schema.ContentArticleType.Table,
			ForeignKey: schema.ContentArticle.ArticleTypeID,
			Fields: []Field{
				idField(),
				{Key: "name", Column: schema.ContentArticleType.Name},
				{Key: "type", Column: schema.ContentArticleType.Type},
				{Key: "icon", Column: schema.ContentArticleType.Icon},
				{Key: "description", Column: schema.ContentArticleType.Description, Localization: LocalizedMap},
			},
		},
		creatorJoin(schema.ContentArticle.CreatorID),
	},
}

// ArticleType describes the content.articletype collection.
var ArticleType = Descriptor{
	Name:       "articletype",
	Resource:   "Article type",
	Collection: schema.ContentArticleType.Table,
	Fields: []Field{
		idField(),
		{Key: "name", Column: schema.ContentArticleType.Name},
		{Key: "type", Column: schema.ContentArticleType.Type},
		{Key: "icon", Column: schema.ContentArticleType.Icon},
		{Key: "description", Column: schema.ContentArticleType.Description, Localization: LocalizedMap},
		{Key: "createdAt", Column: schema.ContentArticleType.CreatedAt},
		{Key: "updatedAt", Column: schema.ContentArticleType.UpdatedAt},
		enabledField(),
	},
	Joins: []Join{creatorJoin(schema.ContentArticleType.CreatorID)},
}

// Glossary describes the content.glossary collection.
var Glossary = Descriptor{
	Name:       "glossary",
	Resource:   "Glossary entry",
	Collection: schema.ContentGlossary.Table,
	Fields: []Field{
		idField(),
		{Key: "abbreviation", Column: schema.ContentGlossary.Abbreviation},
		{Key: "phrase", Column: schema.ContentGlossary.Phrase},
		{Key: "explication", Column: schema.ContentGlossary.Explication},
		{Key: "explanation", Column: schema.ContentGlossary.Explanation, Localization: LocalizedMap, Truncate: true},
		{Key: "createdAt", Column: schema.ContentGlossary.CreatedAt},
		{Key: "updatedAt", Column: schema.ContentGlossary.UpdatedAt},
		enabledField(),
	},
	Joins: []Join{creatorJoin(schema.ContentGlossary.CreatorID)},
}

// User describes the content.user collection. The password hash is never projected.
var User = Descriptor{
	Name:       "user",
	Resource:   "User",
	Collection: schema.ContentUser.Table,
	Fields: []Field{
		idField(),
		{Key: "firstName", Column: schema.ContentUser.FirstName},
		{Key: "lastName", Column: schema.ContentUser.LastName},
		{Key: "email", Column: schema.ContentUser.Email},
		{Key: "avatar", Column: schema.ContentUser.Avatar},
		{Key: "aboutMe", Column: schema.ContentUser.AboutMe, Localization: LocalizedMap},
		{Key: "createdAt", Column: schema.ContentUser.CreatedAt},
		{Key: "updatedAt", Column: schema.ContentUser.UpdatedAt},
		{Key: "roles", Column: schema.ContentUser.Roles, Visibility: PrivilegedOnly},
		enabledField(),
	},
}

// Descriptors lists every served collection in route order.
func Descriptors() []Descriptor {
	return []Descriptor{Article, ArticleType, Glossary, User}
}
