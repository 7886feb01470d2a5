package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/controllers/auth"
	"github.com/teamvolt/binex/controllers/helpers"
	"github.com/teamvolt/binex/engine"
)

func CreatePurchase(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	errors := new(helpers.Errors)
	payload := new(helpers.CreatePurchaseParams)

	if err := c.BodyParser(payload); err != nil {
		c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})

		return err
	}

	helpers.Vaildate(payload, errors)

	if !payload.AmountBV.IsPositive() {
		errors.Errors = append(errors.Errors, "purchase.non_positive_amount")
	}

	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	event := engine.PurchaseEvent{
		CompanyID: CurrentUser.CompanyID,
		MemberUID: CurrentUser.UID,
		AmountBV:  payload.AmountBV,
	}

	payload_message, err := json.Marshal(event)
	if err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	config.Nats.Publish("purchase_processor", payload_message)

	return c.Status(201).JSON(fiber.Map{
		"uid":       CurrentUser.UID,
		"amount_bv": payload.AmountBV,
		"state":     "pending",
	})
}
