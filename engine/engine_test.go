package engine

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/models/datatypes"
	"github.com/teamvolt/binex/types"
)

var testNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func dec(value int64) decimal.Decimal {
	return decimal.NewFromInt(value)
}

func testConfig(company_id string) *models.MLMConfig {
	return &models.MLMConfig{
		CompanyID:     company_id,
		SpilloverMode: types.SpilloverAuto,
		Timezone:      "UTC",
		BinaryRule: datatypes.BinaryRule{
			PairRatioUnit: decimal.NewFromInt(100),
			PairIncome:    decimal.NewFromInt(50),
			CappingPeriod: types.PeriodDay,
			CappingAmount: decimal.NewFromInt(500),
			WeakLeg:       types.WeakLegSmaller,
		},
	}
}

func newTestEngine(mlm_config *models.MLMConfig) (*Engine, *MemoryStore) {
	store := NewMemoryStore()
	store.SetConfig(mlm_config)

	return New(store), store
}

func register(e *Engine, company_id string, uid string, sponsor_uid string, side string, bv int64) (*PipelineResult, error) {
	event := RegistrationEvent{
		CompanyID:  company_id,
		MemberUID:  uid,
		SponsorUID: sponsor_uid,
		PackageBV:  decimal.NewFromInt(bv),
	}
	if len(side) > 0 {
		event.RequestedSide = null.StringFrom(side)
	}

	return e.ProcessRegistration(event, testNow)
}
