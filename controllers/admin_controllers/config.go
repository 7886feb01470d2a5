package admin_controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/controllers/auth"
	"github.com/teamvolt/binex/controllers/helpers"
	"github.com/teamvolt/binex/models"
)

func GetConfig(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	mlm_config, err := models.GetMLMConfig(CurrentUser.CompanyID)
	if err != nil {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"record.not_found"},
		})
	}

	return c.Status(200).JSON(mlm_config)
}

// UpdateConfig writes the tenant compensation plan. Validation happens here,
// at write time; the engine never re-checks a stored plan.
func UpdateConfig(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	payload := new(models.MLMConfig)

	if err := c.BodyParser(payload); err != nil {
		c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})

		return err
	}

	payload.CompanyID = CurrentUser.CompanyID

	if err := payload.Validate(); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	var mlm_config *models.MLMConfig
	result := config.DataBase.First(&mlm_config, "company_id = ?", CurrentUser.CompanyID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		mlm_config = payload
		if err := config.DataBase.Create(mlm_config).Error; err != nil {
			return c.Status(500).JSON(helpers.Errors{
				Errors: []string{"server.internal_error"},
			})
		}
	} else {
		payload.ID = mlm_config.ID
		payload.CreatedAt = mlm_config.CreatedAt
		mlm_config = payload

		if err := config.DataBase.Save(mlm_config).Error; err != nil {
			return c.Status(500).JSON(helpers.Errors{
				Errors: []string{"server.internal_error"},
			})
		}
	}

	if config.Redis != nil {
		config.Redis.Delete(mlm_config.CacheKey())
	}

	return c.Status(200).JSON(mlm_config)
}
