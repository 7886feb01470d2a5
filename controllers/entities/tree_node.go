package entities

import (
	"github.com/shopspring/decimal"
)

// TreeNode is the recursive subtree view returned by the tree endpoints.
// Children beyond the requested depth are omitted.
type TreeNode struct {
	MemberUID   string          `json:"member_uid"`
	OwnVolume   decimal.Decimal `json:"own_volume"`
	LeftVolume  decimal.Decimal `json:"left_volume"`
	RightVolume decimal.Decimal `json:"right_volume"`
	TotalVolume decimal.Decimal `json:"total_volume"`
	LeftCount   int64           `json:"left_count"`
	RightCount  int64           `json:"right_count"`
	TotalCount  int64           `json:"total_count"`
	Left        *TreeNode       `json:"left,omitempty"`
	Right       *TreeNode       `json:"right,omitempty"`
}
