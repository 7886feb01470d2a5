package helpers

import (
	"github.com/shopspring/decimal"
)

type CreateMemberParams struct {
	UID           string          `json:"uid" validate:"required"`
	Email         string          `json:"email" validate:"required|email"`
	SponsorUID    string          `json:"sponsor_uid"`
	PlacementSide string          `json:"placement_side"`
	PackageBV     decimal.Decimal `json:"package_bv"`
}

type CreatePurchaseParams struct {
	AmountBV decimal.Decimal `json:"amount_bv" validate:"required"`
}

type AssignRankParams struct {
	Level int32 `json:"level" validate:"required"`
}
