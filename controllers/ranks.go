package controllers

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/teamvolt/binex/controllers/auth"
	"github.com/teamvolt/binex/controllers/entities"
	"github.com/teamvolt/binex/controllers/helpers"
	"github.com/teamvolt/binex/engine"
	"github.com/teamvolt/binex/models"
)

func GetRank(c *fiber.Ctx) error {
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

	progress := &entities.RankProgress{
		Level:        CurrentUser.RankLevel,
		DirectsCount: CurrentUser.DirectsCount,
	}

	if node := CurrentUser.Node(); node != nil {
		progress.TeamVolume = node.TotalVolume
		progress.LeftVolume = node.LeftVolume
		progress.RightVolume = node.RightVolume
	}

	if pairs, err := engine.NewGormStore().PairsTotal(CurrentUser.CompanyID, CurrentUser.UID); err == nil {
		progress.PairsTotal = pairs
	}

	sorted := mlm_config.Ranks
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Level < sorted[j].Level
	})

	for _, rank := range sorted {
		if rank.Level == CurrentUser.RankLevel {
			progress.Title = rank.Title
		}

		if rank.Level > CurrentUser.RankLevel && progress.NextLevel == 0 {
			progress.NextLevel = rank.Level
			progress.NextTitle = rank.Title
			progress.NextRequires = &entities.RankRequirements{
				MinTeamVolume:  rank.MinTeamVolume,
				MinPairs:       rank.MinPairs,
				MinDirects:     rank.MinDirects,
				MinLeftVolume:  rank.MinLeftVolume,
				MinRightVolume: rank.MinRightVolume,
			}
		}
	}

	return c.Status(200).JSON(progress)
}
