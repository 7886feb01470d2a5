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

// BinaryRule is stored as a JSON column on mlm_configs.
type BinaryRule struct {
	PairRatioUnit decimal.Decimal `json:"pair_ratio_unit"`
	PairIncome    decimal.Decimal `json:"pair_income"`
	CappingPeriod string          `json:"capping_period"`
	CappingAmount decimal.Decimal `json:"capping_amount"`
	CarryForward  bool            `json:"carry_forward"`
	FlushOut      bool            `json:"flush_out"`
	WeakLeg       string          `json:"weak_leg"`
}

// Value return json value, implement driver.Valuer interface
func (m BinaryRule) Value() (driver.Value, error) {
	data, err := json.Marshal(m)
	return string(data), err
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (m *BinaryRule) Scan(val interface{}) error {
	if val == nil {
		*m = BinaryRule{}
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
	t := BinaryRule{}
	err := json.Unmarshal(ba, &t)
	*m = t
	return err
}

// GormDataType gorm common data type
func (m BinaryRule) GormDataType() string {
	return "jsonmap"
}

// GormDBDataType gorm db data type
func (BinaryRule) GormDBDataType(db *gorm.DB, field *schema.Field) string {
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
