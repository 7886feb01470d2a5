package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teamvolt/binex/controllers/helpers"
	"github.com/teamvolt/binex/types"
)

func TestIncomeFiltersOrderBy(t *testing.T) {
	for _, order_by := range []types.OrderBy{types.OrderByAsc, types.OrderByDesc} {
		errors := new(helpers.Errors)
		helpers.Vaildate(&IncomeFilters{OrderBy: order_by, Limit: 100, Page: 1}, errors)
		assert.Zero(t, errors.Size())
	}

	// Anything outside asc/desc never reaches the order clause.
	errors := new(helpers.Errors)
	helpers.Vaildate(&IncomeFilters{OrderBy: "asc; drop table income_transactions"}, errors)
	assert.NotZero(t, errors.Size())
}

func TestIncomeFiltersRejectsNegativePaging(t *testing.T) {
	errors := new(helpers.Errors)
	helpers.Vaildate(&IncomeFilters{OrderBy: types.OrderByDesc, Limit: -1, Page: -2}, errors)
	assert.NotZero(t, errors.Size())
}
