package schema

// ContentUserTable represents the 'content.user' table
type ContentUserTable struct {
	Table        string
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Avatar       string
	AboutMe      string
	Roles        string
	IsEnabled    string
	LastLoginAt  string
	CreatedAt    string
	UpdatedAt    string
}

// ContentUser is the schema definition for content.user.
// The table name is quoted because user is a reserved word.
var ContentUser = ContentUserTable{
	Table:        `content."user"`,
	ID:           "id",
	FirstName:    "firstname",
	LastName:     "lastname",
	Email:        "email",
	PasswordHash: "passwordhash",
	Avatar:       "avatar",
	AboutMe:      "aboutme",
	Roles:        "roles",
	IsEnabled:    "isenabled",
	LastLoginAt:  "lastloginat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// LoginColumns returns the columns read by the login flow.
func (t ContentUserTable) LoginColumns() []string {
	return []string{t.ID, t.FirstName, t.LastName, t.Email, t.PasswordHash, t.Avatar, t.Roles, t.IsEnabled}
}
