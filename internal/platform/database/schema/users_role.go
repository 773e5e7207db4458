package schema

// UserRoleTable represents the 'users.user_role' table
type UserRoleTable struct {
	Table     string
	ID        string
	UserID    string
	Role      string
	CreatedAt string
}

// UserRole is the schema definition for users.user_role
var UserRole = UserRoleTable{
	Table:     "users.user_role",
	ID:        "id",
	UserID:    "user_id",
	Role:      "role",
	CreatedAt: "created_at",
}
