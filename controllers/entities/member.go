package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Member struct {
	UID           string          `json:"uid"`
	Email         string          `json:"email"`
	State         string          `json:"state"`
	SponsorUID    string          `json:"sponsor_uid,omitempty"`
	SponsorEmail  string          `json:"sponsor_email,omitempty"`
	PlacementSide string          `json:"placement_side,omitempty"`
	PackageBV     decimal.Decimal `json:"package_bv"`
	RankLevel     int32           `json:"rank_level"`
	RankTitle     string          `json:"rank_title,omitempty"`
	DirectsCount  int64           `json:"directs_count"`
	CreatedAt     time.Time       `json:"created_at"`
}
