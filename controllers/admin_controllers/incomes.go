package admin_controllers

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
		Where("company_id = ?", CurrentUser.CompanyID)

	if len(params.MemberUID) > 0 {
		tx = tx.Where("member_uid = ?", params.MemberUID)
	}

	if len(params.Type) > 0 {
		tx = tx.Where("income_type = ?", params.Type)
	}

	if len(params.State) > 0 {
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

	return c.Status(200).JSON(incomes)
}

// CancelIncome voids a pending transaction. Credited transactions are
// immutable; clawing back paid funds is a wallet operation, not a cancel.
func CancelIncome(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	var income *models.IncomeTransaction
	if result := models.Lock().First(&income, "company_id = ? AND uuid = ?", CurrentUser.CompanyID, c.Params("uuid")); result.Error != nil {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"record.not_found"},
		})
	}

	if income.Status != types.IncomePending {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"admin.income.not_pending"},
		})
	}

	income.Status = types.IncomeCancelled
	if err := config.DataBase.Save(&income).Error; err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	income.TriggerEvent()

	return c.Status(200).JSON(income.ToJSON())
}
