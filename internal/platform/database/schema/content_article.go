package schema

// ContentArticleTable represents the 'content.article' table
type ContentArticleTable struct {
	Table         string
	ID            string
	Title         string
	ArticleTypeID string
	SeriePart     string
	Content       string
	CreatorID     string
	IsEnabled     string
	CreatedAt     string
	UpdatedAt     string
}

// ContentArticle is the schema definition for content.article.
// Title is a column prefix: the table stores titlepl and titleen.
var ContentArticle = ContentArticleTable{
	Table:         "content.article",
	ID:            "id",
	Title:         "title",
	ArticleTypeID: "articletypeid",
	SeriePart:     "seriepart",
	Content:       "content",
	CreatorID:     "creatorid",
	IsEnabled:     "isenabled",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}
