package engine

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/models/concerns"
)

const maxConflictRetries = 3

var conflictBackoff = 50 * time.Millisecond

// Volume carries currency-like precision: two fractional digits.
const volumePrecision int32 = 2

var precision_validator = &concerns.PrecisionValidator{}

// ApplyVolumeDelta adds delta to the member's own volume and propagates it
// up the placement chain, returning the touched ancestor node ids in
// bottom-up order. Each node write is guarded by its lock version.
func (e *Engine) ApplyVolumeDelta(company_id string, member_uid string, delta decimal.Decimal) ([]uint64, error) {
	if delta.IsNegative() {
		return nil, &InvariantViolation{Detail: "negative volume delta " + delta.String()}
	}
	if !precision_validator.LessThanOrEqTo(delta, volumePrecision) {
		return nil, &InvariantViolation{Detail: "volume delta exceeds precision " + delta.String()}
	}

	node, err := e.store.NodeByMember(company_id, member_uid)
	if err != nil {
		return nil, err
	}

	node, err = e.updateNodeWithRetry(company_id, node.ID, func(n *models.TreeNode) error {
		n.OwnVolume = n.OwnVolume.Add(delta)
		n.TotalVolume = n.TotalVolume.Add(delta)
		return checkVolumes(n)
	})
	if err != nil {
		return nil, err
	}

	ancestors := make([]uint64, 0)
	child := node

	for child.ParentID.Valid {
		parent_id := child.ParentID.Uint64
		side := child.ParentSide.String

		parent, err := e.updateNodeWithRetry(company_id, parent_id, func(n *models.TreeNode) error {
			n.AddVolume(side, delta)
			return checkVolumes(n)
		})
		if err != nil {
			return ancestors, err
		}

		ancestors = append(ancestors, parent_id)
		child = parent
	}

	return ancestors, nil
}

// ApplyCountDelta propagates a member-count change from a freshly placed
// node up to the root.
func (e *Engine) ApplyCountDelta(company_id string, node *models.TreeNode, delta int64) error {
	child := node

	for child.ParentID.Valid {
		parent_id := child.ParentID.Uint64
		side := child.ParentSide.String

		parent, err := e.updateNodeWithRetry(company_id, parent_id, func(n *models.TreeNode) error {
			n.AddCount(side, delta)
			if n.LeftCount < 0 || n.RightCount < 0 {
				return &InvariantViolation{Detail: "negative subtree count"}
			}
			return nil
		})
		if err != nil {
			return err
		}

		child = parent
	}

	return nil
}

// updateNodeWithRetry performs a read-mutate-conditional-write cycle on one
// node, retrying version conflicts with exponential backoff.
func (e *Engine) updateNodeWithRetry(company_id string, id uint64, mutate func(*models.TreeNode) error) (*models.TreeNode, error) {
	backoff := conflictBackoff

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		node, err := e.store.Node(company_id, id)
		if err != nil {
			return nil, err
		}

		if err := mutate(node); err != nil {
			return nil, err
		}

		err = e.store.UpdateNode(node)
		if err == nil {
			return node, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return nil, err
		}

		time.Sleep(backoff)
		backoff *= 2
	}

	return nil, ErrVersionConflict
}

func checkVolumes(n *models.TreeNode) error {
	for _, volume := range []decimal.Decimal{n.OwnVolume, n.LeftVolume, n.RightVolume, n.TotalVolume} {
		if volume.IsNegative() {
			return &InvariantViolation{Detail: "negative volume on node " + n.MemberUID}
		}
	}

	if !n.ConsistentVolumes() {
		return &InvariantViolation{Detail: "total volume mismatch on node " + n.MemberUID}
	}

	return nil
}
