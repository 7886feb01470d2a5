package entities

import (
	"github.com/shopspring/decimal"
)

type RankRequirements struct {
	MinTeamVolume  decimal.Decimal `json:"min_team_volume"`
	MinPairs       int64           `json:"min_pairs"`
	MinDirects     int64           `json:"min_directs"`
	MinLeftVolume  decimal.Decimal `json:"min_left_volume"`
	MinRightVolume decimal.Decimal `json:"min_right_volume"`
}

// RankProgress pairs the member's standing with the next achievable rank so
// the dashboard can render progress bars without a second round trip.
type RankProgress struct {
	Level        int32             `json:"level"`
	Title        string            `json:"title,omitempty"`
	TeamVolume   decimal.Decimal   `json:"team_volume"`
	LeftVolume   decimal.Decimal   `json:"left_volume"`
	RightVolume  decimal.Decimal   `json:"right_volume"`
	PairsTotal   int64             `json:"pairs_total"`
	DirectsCount int64             `json:"directs_count"`
	NextLevel    int32             `json:"next_level,omitempty"`
	NextTitle    string            `json:"next_title,omitempty"`
	NextRequires *RankRequirements `json:"next_requires,omitempty"`
}
