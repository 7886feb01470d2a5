package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/volatiletech/null"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/controllers/auth"
	"github.com/teamvolt/binex/controllers/entities"
	"github.com/teamvolt/binex/controllers/helpers"
	"github.com/teamvolt/binex/engine"
)

// GetMember returns the caller's profile with the sponsor resolved.
func GetMember(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	member_json := entities.Member{
		UID:           CurrentUser.UID,
		Email:         CurrentUser.Email,
		State:         CurrentUser.State,
		SponsorUID:    CurrentUser.SponsorUID.String,
		PlacementSide: CurrentUser.PlacementSide.String,
		PackageBV:     CurrentUser.PackageBV,
		RankLevel:     CurrentUser.RankLevel,
		DirectsCount:  CurrentUser.DirectsCount,
		CreatedAt:     CurrentUser.CreatedAt,
	}

	if sponsor := CurrentUser.Sponsor(); sponsor != nil {
		member_json.SponsorEmail = sponsor.Email
	}

	return c.Status(200).JSON(member_json)
}

// CreateMember accepts a downline registration and hands it to the engine
// asynchronously. Placement, volume propagation and income evaluation all
// happen in the registration processor worker.
func CreateMember(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	errors := new(helpers.Errors)
	payload := new(helpers.CreateMemberParams)

	if err := c.BodyParser(payload); err != nil {
		c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})

		return err
	}

	helpers.Vaildate(payload, errors)

	if payload.PackageBV.IsNegative() {
		errors.Errors = append(errors.Errors, "member.invalid_package_bv")
	}

	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	if len(payload.SponsorUID) == 0 {
		payload.SponsorUID = CurrentUser.UID
	}

	event := engine.RegistrationEvent{
		CompanyID:  CurrentUser.CompanyID,
		MemberUID:  payload.UID,
		Email:      payload.Email,
		SponsorUID: payload.SponsorUID,
		PackageBV:  payload.PackageBV,
	}
	if len(payload.PlacementSide) > 0 {
		event.RequestedSide = null.StringFrom(payload.PlacementSide)
	}

	payload_message, err := json.Marshal(event)
	if err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	config.Nats.Publish("registration_processor", payload_message)

	return c.Status(201).JSON(fiber.Map{
		"uid":         payload.UID,
		"sponsor_uid": payload.SponsorUID,
		"state":       "pending",
	})
}
