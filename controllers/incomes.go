package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/controllers/auth"
	"github.com/teamvolt/binex/controllers/helpers"
	"github.com/teamvolt/binex/controllers/queries"
	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/types"
)

func GetIncomes(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	var incomes []models.IncomeTransaction
	incomes_json := make([]models.IncomeTransactionJSON, 0)

	params := new(queries.IncomeFilters)
	if err := c.QueryParser(params); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_query"},
		})
	}

	if len(params.OrderBy) == 0 {
		params.OrderBy = types.OrderByDesc
	}

	errors := new(helpers.Errors)
	helpers.Vaildate(params, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	tx := config.DataBase.Order("created_at "+params.OrderBy).
		Where("company_id = ? AND member_uid = ?", CurrentUser.CompanyID, CurrentUser.UID)

	if len(params.Type) > 0 {
		switch params.Type {
		case types.IncomeDirectReferral, types.IncomeBinaryMatching, types.IncomeSponsorMatching, types.IncomeRepurchase, types.IncomeRankBonus:
		default:
			return c.Status(422).JSON(helpers.Errors{
				Errors: []string{"income.invalid_type"},
			})
		}

		tx = tx.Where("income_type = ?", params.Type)
	}

	if len(params.State) > 0 {
		switch params.State {
		case types.IncomePending, types.IncomeCredited, types.IncomeCancelled:
		default:
			return c.Status(422).JSON(helpers.Errors{
				Errors: []string{"income.invalid_state"},
			})
		}

		tx = tx.Where("status = ?", params.State)
	}

	if params.TimeFrom > 0 {
		time_from := time.Unix(params.TimeFrom, 0)
		tx = tx.Where("created_at >= ?", time_from)
	}

	if params.TimeTo > 0 {
		time_to := time.Unix(params.TimeTo, 0)
		tx = tx.Where("created_at < ?", time_to)
	}

	if params.Limit == 0 {
		params.Limit = 100
	}

	if params.Page == 0 {
		params.Page = 1
	}

	tx = tx.Offset(params.Page*params.Limit - params.Limit).Limit(params.Limit)

	tx.Find(&incomes)

	for _, income := range incomes {
		incomes_json = append(incomes_json, income.ToJSON())
	}

	return c.Status(200).JSON(incomes_json)
}
