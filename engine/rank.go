package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/models/datatypes"
	"github.com/teamvolt/binex/types"
)

// EvaluateRank assigns the highest qualifying auto-assignable rank to the
// member. Ranks never downgrade automatically: re-evaluation only upgrades.
// A rank bonus transaction is posted when the achieved rank carries a
// reward.
func (e *Engine) EvaluateRank(company_id string, member_uid string, now time.Time) (*datatypes.Rank, *models.IncomeTransaction, error) {
	mlm_config, err := e.store.Config(company_id)
	if err != nil {
		return nil, nil, err
	}

	if len(mlm_config.Ranks) == 0 {
		return nil, nil, nil
	}

	member, err := e.store.Member(company_id, member_uid)
	if err != nil {
		return nil, nil, err
	}

	node, err := e.store.NodeByMember(company_id, member_uid)
	if err != nil {
		return nil, nil, nil
	}

	pairs, err := e.store.PairsTotal(company_id, member_uid)
	if err != nil {
		return nil, nil, err
	}

	ranks := make([]datatypes.Rank, len(mlm_config.Ranks))
	copy(ranks, mlm_config.Ranks)
	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i].Level > ranks[j].Level
	})

	for _, rank := range ranks {
		if !rank.AutoAssign {
			continue
		}

		if !rankSatisfied(rank, member, node, pairs) {
			continue
		}

		if rank.Level <= member.RankLevel {
			return nil, nil, nil
		}

		member.RankLevel = rank.Level
		if err := e.store.UpdateMember(member); err != nil {
			return nil, nil, err
		}

		var income *models.IncomeTransaction
		if rank.Reward.IsPositive() {
			income = &models.IncomeTransaction{
				UUID:       uuid.New(),
				CompanyID:  company_id,
				MemberUID:  member_uid,
				IncomeType: types.IncomeRankBonus,
				Amount:     rank.Reward,
				RelatedUID: member_uid,
				Status:     types.IncomePending,
				CreatedAt:  now,
			}

			if err := e.store.CreateIncome(income); err != nil {
				return nil, nil, err
			}
		}

		achieved := rank
		return &achieved, income, nil
	}

	return nil, nil, nil
}

func rankSatisfied(rank datatypes.Rank, member *models.Member, node *models.TreeNode, pairs int64) bool {
	if rank.MinTeamVolume.IsPositive() && node.TotalVolume.LessThan(rank.MinTeamVolume) {
		return false
	}

	if rank.MinLeftVolume.IsPositive() && node.LeftVolume.LessThan(rank.MinLeftVolume) {
		return false
	}

	if rank.MinRightVolume.IsPositive() && node.RightVolume.LessThan(rank.MinRightVolume) {
		return false
	}

	if rank.MinPairs > 0 && pairs < rank.MinPairs {
		return false
	}

	if rank.MinDirects > 0 && member.DirectsCount < rank.MinDirects {
		return false
	}

	return true
}
