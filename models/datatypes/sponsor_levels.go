package datatypes

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type SponsorLevel struct {
	Percentage    decimal.Decimal `json:"percentage"`
	MinTeamVolume decimal.Decimal `json:"min_team_volume"`
	MinPairs      int64           `json:"min_pairs"`
	MinDirects    int64           `json:"min_directs"`
}

// SponsorLevels is the per-level sponsor matching table, index 0 being the
// direct sponsor.
type SponsorLevels []SponsorLevel

// Value return json value, implement driver.Valuer interface
func (m SponsorLevels) Value() (driver.Value, error) {
	data, err := json.Marshal(m)
	return string(data), err
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (m *SponsorLevels) Scan(val interface{}) error {
	if val == nil {
		*m = SponsorLevels{}
		return nil
	}
	var ba []byte
	switch v := val.(type) {
	case []byte:
		ba = v
	case string:
		ba = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", val))
	}
	t := SponsorLevels{}
	err := json.Unmarshal(ba, &t)
	*m = SponsorLevels(t)
	return err
}

// GormDataType gorm common data type
func (m SponsorLevels) GormDataType() string {
	return "jsonmap"
}

// GormDBDataType gorm db data type
func (SponsorLevels) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "sqlite":
		return "JSON"
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	}
	return ""
}
