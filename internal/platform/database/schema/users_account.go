package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	UserGroup    string
	Avatar       string
	CreatedAt    string
	UpdatedAt    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "passwordhash",
	UserGroup:    "usergroup",
	Avatar:       "avatar",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.PasswordHash, t.UserGroup, t.Avatar, t.CreatedAt, t.UpdatedAt}
}
