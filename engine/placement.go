package engine

import (
	"errors"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/volatiletech/null"

	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/types"
)

// Place inserts member_uid into the placement tree under sponsor_uid.
// Duplicate calls for the same member return the existing node. The call
// only mutates tree pointers; volume and count propagation is the
// aggregator's job.
func (e *Engine) Place(company_id string, member_uid string, sponsor_uid string, requested_side null.String) (*models.TreeNode, error) {
	if node, err := e.store.NodeByMember(company_id, member_uid); err == nil {
		return node, nil
	}

	// First node of a tenant becomes the root.
	if len(sponsor_uid) == 0 {
		node := newTreeNode(company_id, member_uid)
		if err := e.store.CreateNode(node); err != nil {
			return nil, err
		}

		return node, nil
	}

	mlm_config, err := e.store.Config(company_id)
	if err != nil {
		return nil, err
	}

	sponsor_node, err := e.store.NodeByMember(company_id, sponsor_uid)
	if err != nil {
		return nil, &PlacementError{Reason: "sponsor_not_in_tree"}
	}

	parent, side, err := e.resolveSlot(mlm_config, sponsor_node, requested_side)
	if err != nil {
		return nil, err
	}

	node := newTreeNode(company_id, member_uid)
	node.ParentID = null.Uint64From(parent.ID)
	node.ParentSide = null.StringFrom(side)

	if err := e.store.CreateNode(node); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		parent.SetChildID(side, node.ID)

		err = e.store.UpdateNode(parent)
		if err == nil {
			return node, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return nil, err
		}

		// Someone raced us into the slot; re-resolve from the fresh parent.
		parent, err = e.store.Node(company_id, parent.ID)
		if err != nil {
			return nil, err
		}

		if parent.ChildID(side).Valid {
			parent, side, err = e.resolveSlot(mlm_config, parent, null.String{})
			if err != nil {
				return nil, err
			}

			node.ParentID = null.Uint64From(parent.ID)
			node.ParentSide = null.StringFrom(side)
			if err := e.store.UpdateNode(node); err != nil {
				return nil, err
			}
		}
	}

	return nil, ErrVersionConflict
}

func newTreeNode(company_id string, member_uid string) *models.TreeNode {
	return &models.TreeNode{
		CompanyID:  company_id,
		MemberUID:  member_uid,
		TotalCount: 1,
	}
}

func (e *Engine) resolveSlot(mlm_config *models.MLMConfig, sponsor_node *models.TreeNode, requested_side null.String) (*models.TreeNode, types.PlacementSide, error) {
	if requested_side.Valid {
		side := requested_side.String
		if side != types.SideLeft && side != types.SideRight {
			return nil, "", &PlacementError{Reason: "invalid_side"}
		}

		if !sponsor_node.ChildID(side).Valid {
			return sponsor_node, side, nil
		}

		if mlm_config.SpilloverMode == types.SpilloverManual {
			if free, ok := sponsor_node.EmptySide(); ok {
				return sponsor_node, free, nil
			}

			return nil, "", ErrNoAvailableSlot
		}

		return e.spillover(mlm_config.CompanyID, sponsor_node, side)
	}

	if free, ok := sponsor_node.EmptySide(); ok {
		return sponsor_node, free, nil
	}

	if mlm_config.SpilloverMode == types.SpilloverManual {
		return nil, "", ErrNoAvailableSlot
	}

	return e.spillover(mlm_config.CompanyID, sponsor_node, weakSide(mlm_config, sponsor_node))
}

// spillover searches breadth-first down one leg for the first node with an
// empty slot, left before right at every level for determinism.
func (e *Engine) spillover(company_id string, start *models.TreeNode, side types.PlacementSide) (*models.TreeNode, types.PlacementSide, error) {
	queue := linkedlistqueue.New()
	queue.Enqueue(start.ChildID(side).Uint64)

	for !queue.Empty() {
		value, _ := queue.Dequeue()

		node, err := e.store.Node(company_id, value.(uint64))
		if err != nil {
			return nil, "", err
		}

		if free, ok := node.EmptySide(); ok {
			return node, free, nil
		}

		queue.Enqueue(node.LeftID.Uint64)
		queue.Enqueue(node.RightID.Uint64)
	}

	return nil, "", ErrNoAvailableSlot
}

func weakSide(mlm_config *models.MLMConfig, node *models.TreeNode) types.PlacementSide {
	switch mlm_config.BinaryRule.WeakLeg {
	case types.WeakLegLeft:
		return types.SideLeft
	case types.WeakLegRight:
		return types.SideRight
	default:
		if node.VolumeOn(types.SideRight).LessThan(node.VolumeOn(types.SideLeft)) {
			return types.SideRight
		}

		return types.SideLeft
	}
}
