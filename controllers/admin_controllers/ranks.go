package admin_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/controllers/auth"
	"github.com/teamvolt/binex/controllers/entities"
	"github.com/teamvolt/binex/controllers/helpers"
	"github.com/teamvolt/binex/models"
)

// AssignRank sets a member rank by hand. Manual assignment may go up or
// down and never posts a rank bonus; that stays an operator decision.
func AssignRank(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	errors := new(helpers.Errors)
	payload := new(helpers.AssignRankParams)

	if err := c.BodyParser(payload); err != nil {
		c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})

		return err
	}

	helpers.Vaildate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	mlm_config, err := models.GetMLMConfig(CurrentUser.CompanyID)
	if err != nil {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"record.not_found"},
		})
	}

	var rank_title string
	found := false
	for _, rank := range mlm_config.Ranks {
		if rank.Level == payload.Level {
			rank_title = rank.Title
			found = true
			break
		}
	}

	if !found {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"admin.rank.unknown_level"},
		})
	}

	var member *models.Member
	if result := config.DataBase.First(&member, "company_id = ? AND uid = ?", CurrentUser.CompanyID, c.Params("uid")); result.Error != nil {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"record.not_found"},
		})
	}

	member.RankLevel = payload.Level
	if err := config.DataBase.Save(&member).Error; err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	return c.Status(200).JSON(entities.Member{
		UID:           member.UID,
		Email:         member.Email,
		State:         member.State,
		SponsorUID:    member.SponsorUID.String,
		PlacementSide: member.PlacementSide.String,
		PackageBV:     member.PackageBV,
		RankLevel:     member.RankLevel,
		RankTitle:     rank_title,
		DirectsCount:  member.DirectsCount,
		CreatedAt:     member.CreatedAt,
	})
}
