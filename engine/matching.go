package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/models/datatypes"
	"github.com/teamvolt/binex/types"
)

// EvaluateMatching computes the binary matching payout for one node and
// consumes the matched volume from both legs. Re-running it without an
// intervening volume delta produces no further pairs, which makes the
// evaluation idempotent per period.
func (e *Engine) EvaluateMatching(company_id string, node_id uint64, now time.Time) (*models.IncomeTransaction, error) {
	mlm_config, err := e.store.Config(company_id)
	if err != nil {
		return nil, err
	}

	rule := mlm_config.BinaryRule
	if !rule.PairRatioUnit.IsPositive() || !rule.PairIncome.IsPositive() {
		return nil, nil
	}

	node, err := e.store.Node(company_id, node_id)
	if err != nil {
		return nil, err
	}

	matched := matchedPairs(rule, node)
	if matched == 0 {
		return nil, nil
	}

	raw_income := rule.PairIncome.Mul(decimal.NewFromInt(matched))

	payout := raw_income
	consumed := matched

	if rule.CappingAmount.IsPositive() {
		window_from, window_to := PeriodWindow(rule.CappingPeriod, mlm_config.Location(), now)

		paid, err := e.store.IncomeInWindow(company_id, node.MemberUID, types.IncomeBinaryMatching, window_from, window_to)
		if err != nil {
			return nil, err
		}

		remaining := rule.CappingAmount.Sub(paid)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		if rule.CarryForward {
			// Cap limits the payout amount, not pair consumption: full
			// matched pairs are deducted regardless of funding.
			if payout.GreaterThan(remaining) {
				payout = remaining
			}
		} else {
			// Partial funding: only pairs the remaining cap can fund are
			// consumed; the rest stays on the legs until the period rolls
			// (and is flushed there when flush-out is configured).
			funded := remaining.Div(rule.PairIncome).Floor().IntPart()
			if funded < consumed {
				consumed = funded
			}
			payout = rule.PairIncome.Mul(decimal.NewFromInt(consumed))
		}
	}

	if consumed == 0 {
		return nil, nil
	}

	deduction := rule.PairRatioUnit.Mul(decimal.NewFromInt(consumed))

	if _, err := e.updateNodeWithRetry(company_id, node.ID, func(n *models.TreeNode) error {
		n.LeftVolume = n.LeftVolume.Sub(deduction)
		n.RightVolume = n.RightVolume.Sub(deduction)
		n.TotalVolume = n.TotalVolume.Sub(deduction).Sub(deduction)
		return checkVolumes(n)
	}); err != nil {
		return nil, err
	}

	if !payout.IsPositive() {
		return nil, nil
	}

	income := &models.IncomeTransaction{
		UUID:       uuid.New(),
		CompanyID:  company_id,
		MemberUID:  node.MemberUID,
		IncomeType: types.IncomeBinaryMatching,
		Amount:     payout,
		PairCount:  consumed,
		RelatedUID: node.MemberUID,
		Status:     types.IncomePending,
		CreatedAt:  now,
	}

	if err := e.store.CreateIncome(income); err != nil {
		return nil, err
	}

	return income, nil
}

// FlushOutNode zeroes whatever unmatched volume is left on both legs. The
// period rollover job calls it for every node of tenants whose plan flushes
// leftovers instead of carrying them forward.
func (e *Engine) FlushOutNode(company_id string, node_id uint64) error {
	_, err := e.updateNodeWithRetry(company_id, node_id, func(n *models.TreeNode) error {
		n.TotalVolume = n.TotalVolume.Sub(n.LeftVolume).Sub(n.RightVolume)
		n.LeftVolume = decimal.Zero
		n.RightVolume = decimal.Zero
		return checkVolumes(n)
	})

	return err
}

// matchedPairs measures pairs against the configured pay leg, never more
// than either leg physically holds.
func matchedPairs(rule datatypes.BinaryRule, node *models.TreeNode) int64 {
	var pay_volume decimal.Decimal

	switch rule.WeakLeg {
	case types.WeakLegLeft:
		pay_volume = node.VolumeOn(types.SideLeft)
	case types.WeakLegRight:
		pay_volume = node.VolumeOn(types.SideRight)
	default:
		pay_volume = decimal.Min(node.LeftVolume, node.RightVolume)
	}

	pairs := pay_volume.Div(rule.PairRatioUnit).Floor().IntPart()

	left_pairs := node.LeftVolume.Div(rule.PairRatioUnit).Floor().IntPart()
	right_pairs := node.RightVolume.Div(rule.PairRatioUnit).Floor().IntPart()

	if left_pairs < pairs {
		pairs = left_pairs
	}
	if right_pairs < pairs {
		pairs = right_pairs
	}

	return pairs
}
