package schema

// ContentGlossaryTable represents the 'content.glossary' table
type ContentGlossaryTable struct {
	Table        string
	ID           string
	Abbreviation string
	Phrase       string
	Explication  string
	Explanation  string
	CreatorID    string
	IsEnabled    string
	CreatedAt    string
	UpdatedAt    string
}

// ContentGlossary is the schema definition for content.glossary
var ContentGlossary = ContentGlossaryTable{
	Table:        "content.glossary",
	ID:           "id",
	Abbreviation: "abbreviation",
	Phrase:       "phrase",
	Explication:  "explication",
	Explanation:  "explanation",
	CreatorID:    "creatorid",
	IsEnabled:    "isenabled",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
