package schema

// ContentAchievementTable represents the 'content.achievement' table
type ContentAchievementTable struct {
	Table        string
	ID           string
	Title        string
	Category     string
	Event        string
	Organization string
	Level        string
	Date         string
	Location     string
	Description  string
	Badge        string
	Verified     string
	DisplayOrder string
	CreatedAt    string
	UpdatedAt    string
}

// ContentAchievement is the schema definition for content.achievement
var ContentAchievement = ContentAchievementTable{
	Table:        "content.achievement",
	ID:           "id",
	Title:        "title",
	Category:     "category",
	Event:        "event",
	Organization: "organization",
	Level:        "level",
	Date:         "date",
	Location:     "location",
	Description:  "description",
	Badge:        "badge",
	Verified:     "verified",
	DisplayOrder: "display_order",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}
