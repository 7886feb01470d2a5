package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/teamvolt/binex/types"
)

// TreeNode is one slot of the placement tree. Nodes are created by the
// placement resolver and mutated by the volume aggregator only; they are
// never deleted.
type TreeNode struct {
	ID          uint64          `json:"id" gorm:"primaryKey"`
	CompanyID   string          `json:"company_id" gorm:"index:idx_tree_nodes_company_member,unique"`
	MemberUID   string          `json:"member_uid" gorm:"index:idx_tree_nodes_company_member,unique"`
	ParentID    null.Uint64     `json:"parent_id"`
	ParentSide  null.String     `json:"parent_side"`
	LeftID      null.Uint64     `json:"left_id"`
	RightID     null.Uint64     `json:"right_id"`
	OwnVolume   decimal.Decimal `json:"own_volume" gorm:"default:0.0" validate:"ValidateOwnVolume"`
	LeftVolume  decimal.Decimal `json:"left_volume" gorm:"default:0.0" validate:"ValidateLeftVolume"`
	RightVolume decimal.Decimal `json:"right_volume" gorm:"default:0.0" validate:"ValidateRightVolume"`
	TotalVolume decimal.Decimal `json:"total_volume" gorm:"default:0.0"`
	LeftCount   int64           `json:"left_count" gorm:"default:0"`
	RightCount  int64           `json:"right_count" gorm:"default:0"`
	TotalCount  int64           `json:"total_count" gorm:"default:1"`
	LockVersion int64           `json:"lock_version" gorm:"default:0"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (n TreeNode) ValidateOwnVolume(OwnVolume decimal.Decimal) bool {
	return OwnVolume.GreaterThanOrEqual(decimal.Zero)
}

func (n TreeNode) ValidateLeftVolume(LeftVolume decimal.Decimal) bool {
	return LeftVolume.GreaterThanOrEqual(decimal.Zero)
}

func (n TreeNode) ValidateRightVolume(RightVolume decimal.Decimal) bool {
	return RightVolume.GreaterThanOrEqual(decimal.Zero)
}

func (n *TreeNode) ChildID(side types.PlacementSide) null.Uint64 {
	if side == types.SideLeft {
		return n.LeftID
	}

	return n.RightID
}

func (n *TreeNode) SetChildID(side types.PlacementSide, id uint64) {
	if side == types.SideLeft {
		n.LeftID = null.Uint64From(id)
	} else {
		n.RightID = null.Uint64From(id)
	}
}

// EmptySide returns the first free leg, left before right.
func (n *TreeNode) EmptySide() (types.PlacementSide, bool) {
	if !n.LeftID.Valid {
		return types.SideLeft, true
	}
	if !n.RightID.Valid {
		return types.SideRight, true
	}

	return "", false
}

func (n *TreeNode) VolumeOn(side types.PlacementSide) decimal.Decimal {
	if side == types.SideLeft {
		return n.LeftVolume
	}

	return n.RightVolume
}

func (n *TreeNode) AddVolume(side types.PlacementSide, delta decimal.Decimal) {
	if side == types.SideLeft {
		n.LeftVolume = n.LeftVolume.Add(delta)
	} else {
		n.RightVolume = n.RightVolume.Add(delta)
	}
	n.TotalVolume = n.TotalVolume.Add(delta)
}

func (n *TreeNode) AddCount(side types.PlacementSide, delta int64) {
	if side == types.SideLeft {
		n.LeftCount += delta
	} else {
		n.RightCount += delta
	}
	n.TotalCount += delta
}

// ConsistentVolumes reports whether total = left + right + own still holds.
func (n *TreeNode) ConsistentVolumes() bool {
	return n.TotalVolume.Equal(n.LeftVolume.Add(n.RightVolume).Add(n.OwnVolume))
}
