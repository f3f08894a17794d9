package dbschema

import (
	"gift-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Tag{})
}

// Tag represents the database schema for vocabulary tags
type Tag struct {
	BaseModel
	Name     string `gorm:"size:64;not null;uniqueIndex:idx_tags_name_category"`
	Category string `gorm:"size:32;not null;uniqueIndex:idx_tags_name_category"`
}

// TableName specifies the table name for Tag
func (Tag) TableName() string {
	return "tags"
}
