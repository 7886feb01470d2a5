package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/models/datatypes"
	"github.com/teamvolt/binex/types"
)

// EvaluateSponsorMatching walks the sponsor chain (not the placement chain)
// up to the configured number of levels and pays each qualifying ancestor a
// percentage of the triggering volume. An inactive ancestor breaks the
// chain rather than being skipped.
func (e *Engine) EvaluateSponsorMatching(company_id string, member_uid string, triggering_volume decimal.Decimal, now time.Time) ([]*models.IncomeTransaction, error) {
	if !triggering_volume.IsPositive() {
		return nil, nil
	}

	mlm_config, err := e.store.Config(company_id)
	if err != nil {
		return nil, err
	}

	if len(mlm_config.SponsorLevels) == 0 {
		return nil, nil
	}

	incomes := make([]*models.IncomeTransaction, 0)

	current, err := e.store.Member(company_id, member_uid)
	if err != nil {
		return nil, err
	}

	for _, level := range mlm_config.SponsorLevels {
		if !current.HavingSponsor() {
			break
		}

		ancestor, err := e.store.Member(company_id, current.SponsorUID.String)
		if err != nil {
			break
		}

		if mlm_config.SponsorAutoDisable && ancestor.InactiveFor(mlm_config.SponsorInactiveDays, now) {
			break
		}

		if qualified, err := e.sponsorQualifies(company_id, ancestor, level); err != nil {
			return incomes, err
		} else if qualified {
			amount := triggering_volume.Mul(level.Percentage).Div(decimal.NewFromInt(100)).Round(volumePrecision)

			if amount.IsPositive() {
				income := &models.IncomeTransaction{
					UUID:       uuid.New(),
					CompanyID:  company_id,
					MemberUID:  ancestor.UID,
					IncomeType: types.IncomeSponsorMatching,
					Amount:     amount,
					RelatedUID: member_uid,
					Status:     types.IncomePending,
					CreatedAt:  now,
				}

				if err := e.store.CreateIncome(income); err != nil {
					return incomes, err
				}

				incomes = append(incomes, income)
			}
		}

		current = ancestor
	}

	return incomes, nil
}

// sponsorQualifies applies all-of semantics: every specified threshold must
// be met.
func (e *Engine) sponsorQualifies(company_id string, member *models.Member, level datatypes.SponsorLevel) (bool, error) {
	if level.MinDirects > 0 && member.DirectsCount < level.MinDirects {
		return false, nil
	}

	if level.MinTeamVolume.IsPositive() {
		node, err := e.store.NodeByMember(company_id, member.UID)
		if err != nil {
			return false, nil
		}

		if node.TotalVolume.LessThan(level.MinTeamVolume) {
			return false, nil
		}
	}

	if level.MinPairs > 0 {
		pairs, err := e.store.PairsTotal(company_id, member.UID)
		if err != nil {
			return false, err
		}

		if pairs < level.MinPairs {
			return false, nil
		}
	}

	return true, nil
}
