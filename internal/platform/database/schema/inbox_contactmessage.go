package schema

// InboxContactMessageTable represents the 'inbox.contact_message' table
type InboxContactMessageTable struct {
	Table     string
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	Read      string
	CreatedAt string
}

// InboxContactMessage is the schema definition for inbox.contact_message
var InboxContactMessage = InboxContactMessageTable{
	Table:     "inbox.contact_message",
	ID:        "id",
	Name:      "name",
	Email:     "email",
	Subject:   "subject",
	Message:   "message",
	Read:      "read",
	CreatedAt: "created_at",
}
