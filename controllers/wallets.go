package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamvolt/binex/controllers/auth"
	"github.com/teamvolt/binex/controllers/helpers"
)

func GetWallet(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	wallet := CurrentUser.GetWallet()

	return c.Status(200).JSON(wallet.ToJSON())
}
