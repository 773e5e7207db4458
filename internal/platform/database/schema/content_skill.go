package schema

// ContentSkillTable represents the 'content.skill' table
type ContentSkillTable struct {
	Table        string
	ID           string
	Name         string
	Category     string
	Level        string
	DisplayOrder string
	CreatedAt    string
	UpdatedAt    string
}

// ContentSkill is the schema definition for content.skill
var ContentSkill = ContentSkillTable{
	Table:        "content.skill",
	ID:           "id",
	Name:         "name",
	Category:     "category",
	Level:        "level",
	DisplayOrder: "display_order",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}
