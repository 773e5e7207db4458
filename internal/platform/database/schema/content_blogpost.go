package schema

// ContentBlogPostTable represents the 'content.blog_post' table
type ContentBlogPostTable struct {
	Table     string
	ID        string
	Title     string
	Slug      string
	Excerpt   string
	Content   string
	Author    string
	Category  string
	ReadTime  string
	Published string
	CreatedAt string
	UpdatedAt string
}

// ContentBlogPost is the schema definition for content.blog_post
var ContentBlogPost = ContentBlogPostTable{
	Table:     "content.blog_post",
	ID:        "id",
	Title:     "title",
	Slug:      "slug",
	Excerpt:   "excerpt",
	Content:   "content",
	Author:    "author",
	Category:  "category",
	ReadTime:  "read_time",
	Published: "published",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
