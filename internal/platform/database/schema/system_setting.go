package schema

// SystemSiteSettingTable represents the 'system.site_setting' table
type SystemSiteSettingTable struct {
	Table     string
	ID        string
	Key       string
	Value     string
	UpdatedAt string
}

// SystemSiteSetting is the schema definition for system.site_setting
var SystemSiteSetting = SystemSiteSettingTable{
	Table:     "system.site_setting",
	ID:        "id",
	Key:       "key",
	Value:     "value",
	UpdatedAt: "updated_at",
}
