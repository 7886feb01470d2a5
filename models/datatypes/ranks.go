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

type Rank struct {
	Level          int32           `json:"level"`
	Title          string          `json:"title"`
	MinTeamVolume  decimal.Decimal `json:"min_team_volume"`
	MinPairs       int64           `json:"min_pairs"`
	MinDirects     int64           `json:"min_directs"`
	MinLeftVolume  decimal.Decimal `json:"min_left_volume"`
	MinRightVolume decimal.Decimal `json:"min_right_volume"`
	Reward         decimal.Decimal `json:"reward"`
	AutoAssign     bool            `json:"auto_assign"`
}

// Ranks is the tenant rank table, kept ordered by level ascending.
type Ranks []Rank

// Value return json value, implement driver.Valuer interface
func (m Ranks) Value() (driver.Value, error) {
	data, err := json.Marshal(m)
	return string(data), err
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (m *Ranks) Scan(val interface{}) error {
	if val == nil {
		*m = Ranks{}
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
	t := Ranks{}
	err := json.Unmarshal(ba, &t)
	*m = Ranks(t)
	return err
}

// GormDataType gorm common data type
func (m Ranks) GormDataType() string {
	return "jsonmap"
}

// GormDBDataType gorm db data type
func (Ranks) GormDBDataType(db *gorm.DB, field *schema.Field) string {
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
