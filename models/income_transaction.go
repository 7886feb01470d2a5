package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/mq_client"
	"github.com/teamvolt/binex/types"
)

// IncomeTransaction is immutable once created except for its status, which
// moves pending -> credited or pending -> cancelled exactly once.
type IncomeTransaction struct {
	ID         uint64             `json:"id" gorm:"primaryKey"`
	UUID       uuid.UUID          `json:"uuid" gorm:"index:idx_incomes_company_uuid,unique"`
	CompanyID  string             `json:"company_id" gorm:"index:idx_incomes_company_uuid,unique"`
	MemberUID  string             `json:"member_uid"`
	IncomeType types.IncomeType   `json:"income_type"`
	Amount     decimal.Decimal    `json:"amount" validate:"ValidateAmount"`
	PairCount  int64              `json:"pair_count" gorm:"default:0"`
	RelatedUID string             `json:"related_uid"`
	Status     types.IncomeStatus `json:"status" gorm:"default:pending"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func (t IncomeTransaction) ValidateAmount(Amount decimal.Decimal) bool {
	return Amount.GreaterThanOrEqual(decimal.Zero)
}

func (t *IncomeTransaction) Member() *Member {
	member := &Member{}

	config.DataBase.First(&member, "company_id = ? AND uid = ?", t.CompanyID, t.MemberUID)

	return member
}

func (t *IncomeTransaction) TriggerEvent() {
	payload_message, _ := json.Marshal(t.ToJSON())

	mq_client.EnqueueEvent("private", t.MemberUID, "income", payload_message)
}

func (t *IncomeTransaction) WriteToInflux() {
	amount, _ := t.Amount.Float64()

	config.InfluxDB.NewPoint(
		"incomes",
		map[string]string{
			"company_id":  t.CompanyID,
			"income_type": t.IncomeType,
		},
		map[string]interface{}{
			"member_uid": t.MemberUID,
			"amount":     amount,
			"pair_count": t.PairCount,
		},
	)
}

type IncomeTransactionJSON struct {
	UUID       uuid.UUID          `json:"uuid"`
	IncomeType types.IncomeType   `json:"income_type"`
	Amount     decimal.Decimal    `json:"amount"`
	PairCount  int64              `json:"pair_count"`
	RelatedUID string             `json:"related_uid"`
	Status     types.IncomeStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
}

func (t *IncomeTransaction) ToJSON() IncomeTransactionJSON {
	return IncomeTransactionJSON{
		UUID:       t.UUID,
		IncomeType: t.IncomeType,
		Amount:     t.Amount,
		PairCount:  t.PairCount,
		RelatedUID: t.RelatedUID,
		Status:     t.Status,
		CreatedAt:  t.CreatedAt,
	}
}
