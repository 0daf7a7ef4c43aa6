package schema

// ContentArticleTypeTable represents the 'content.articletype' table
type ContentArticleTypeTable struct {
	Table       string
	ID          string
	Name        string
	Type        string
	Icon        string
	Description string
	CreatorID   string
	IsEnabled   string
	CreatedAt   string
	UpdatedAt   string
}

// ContentArticleType is the schema definition for content.articletype
var ContentArticleType = ContentArticleTypeTable{
	Table:       "content.articletype",
	ID:          "id",
	Name:        "name",
	Type:        "type",
	Icon:        "icon",
	Description: "description",
	CreatorID:   "creatorid",
	IsEnabled:   "isenabled",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
