package schema

// ContentCertificationTable represents the 'content.certification' table
type ContentCertificationTable struct {
	Table        string
	ID           string
	Title        string
	Issuer       string
	Category     string
	Date         string
	Description  string
	ImageURL     string
	Skills       string
	Verified     string
	VerifyURL    string
	DisplayOrder string
	CreatedAt    string
	UpdatedAt    string
}

// ContentCertification is the schema definition for content.certification
var ContentCertification = ContentCertificationTable{
	Table:        "content.certification",
	ID:           "id",
	Title:        "title",
	Issuer:       "issuer",
	Category:     "category",
	Date:         "date",
	Description:  "description",
	ImageURL:     "image_url",
	Skills:       "skills",
	Verified:     "verified",
	VerifyURL:    "verify_url",
	DisplayOrder: "display_order",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}
