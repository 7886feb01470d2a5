package queries

import (
	"github.com/teamvolt/binex/controllers/helpers"
	"github.com/teamvolt/binex/types"
)

type IncomeFilters struct {
	Type      string        `query:"type"`
	State     string        `query:"state"`
	MemberUID string        `query:"member_uid"`
	TimeFrom  int64         `query:"time_from" validate:"uint"`
	TimeTo    int64         `query:"time_to" validate:"uint"`
	Limit     int           `query:"limit" validate:"uint"`
	Page      int           `query:"page" validate:"uint"`
	OrderBy   types.OrderBy `query:"order_by" validate:"ValidateOrderBy"`
}

func (t IncomeFilters) ValidateOrderBy(val types.OrderBy) bool {
	return helpers.ValidateOrderBy(val)
}
