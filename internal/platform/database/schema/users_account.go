package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table          string
	ID             string
	Email          string
	PasswordHash   string
	FullName       string
	AvatarURL      string
	EmailConfirmed string
	CreatedAt      string
	UpdatedAt      string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:          "users.account",
	ID:             "id",
	Email:          "email",
	PasswordHash:   "password_hash",
	FullName:       "full_name",
	AvatarURL:      "avatar_url",
	EmailConfirmed: "email_confirmed",
	CreatedAt:      "created_at",
	UpdatedAt:      "updated_at",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.PasswordHash, t.FullName, t.AvatarURL,
		t.EmailConfirmed, t.CreatedAt, t.UpdatedAt,
	}
}
