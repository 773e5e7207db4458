package schema

// ContentProjectTable represents the 'content.project' table
type ContentProjectTable struct {
	Table        string
	ID           string
	Title        string
	Description  string
	Category     string
	Tags         string
	ImageURL     string
	GithubURL    string
	LiveURL      string
	Featured     string
	DisplayOrder string
	CreatedAt    string
	UpdatedAt    string
}

// ContentProject is the schema definition for content.project
var ContentProject = ContentProjectTable{
	Table:        "content.project",
	ID:           "id",
	Title:        "title",
	Description:  "description",
	Category:     "category",
	Tags:         "tags",
	ImageURL:     "image_url",
	GithubURL:    "github_url",
	LiveURL:      "live_url",
	Featured:     "featured",
	DisplayOrder: "display_order",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}
