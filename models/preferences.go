package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Preferences stores free-form user settings as a JSON document.
type Preferences map[string]interface{}

// Value implements the driver.Valuer interface
func (p Preferences) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (p *Preferences) Scan(value interface{}) error {
	if value == nil {
		*p = Preferences{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal Preferences: unsupported type %T", value)
	}
	if len(data) == 0 {
		*p = Preferences{}
		return nil
	}
	return json.Unmarshal(data, p)
}

// GormDBDataType picks JSONB on postgres and TEXT elsewhere.
func (Preferences) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "TEXT"
}
