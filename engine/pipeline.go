package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/types"
)

type RegistrationEvent struct {
	CompanyID     string          `json:"company_id"`
	MemberUID     string          `json:"member_uid"`
	Email         string          `json:"email"`
	SponsorUID    string          `json:"sponsor_uid"`
	RequestedSide null.String     `json:"requested_side"`
	PackageBV     decimal.Decimal `json:"package_bv"`
}

type PurchaseEvent struct {
	CompanyID string          `json:"company_id"`
	MemberUID string          `json:"member_uid"`
	AmountBV  decimal.Decimal `json:"amount_bv"`
}

// PipelineResult collects what one event produced: the member's node and
// every income transaction awaiting crediting.
type PipelineResult struct {
	Node    *models.TreeNode
	Incomes []*models.IncomeTransaction
}

// ProcessRegistration runs the full pipeline for a new member: placement,
// count and volume propagation, matching on every touched ancestor, direct
// income, sponsor matching and rank re-evaluation. The tree mutation and
// income creation are deliberately not one cross-aggregate transaction;
// income creation failures leave the applied volume delta in place.
func (e *Engine) ProcessRegistration(event RegistrationEvent, now time.Time) (*PipelineResult, error) {
	member, err := e.store.Member(event.CompanyID, event.MemberUID)
	if err != nil {
		member = &models.Member{
			UID:            event.MemberUID,
			CompanyID:      event.CompanyID,
			Email:          event.Email,
			Role:           "member",
			PackageBV:      event.PackageBV,
			LastActivityAt: now,
		}
		if len(event.SponsorUID) > 0 {
			member.SponsorUID = null.StringFrom(event.SponsorUID)
		}

		if err := e.store.CreateMember(member); err != nil {
			return nil, err
		}
	} else if node, err := e.store.NodeByMember(event.CompanyID, event.MemberUID); err == nil {
		// Duplicate event: the member is already placed.
		return &PipelineResult{Node: node, Incomes: []*models.IncomeTransaction{}}, nil
	} else {
		// The auth middleware creates the row from jwt claims before this
		// event arrives; the claims carry no sponsor link or package.
		if !member.HavingSponsor() && len(event.SponsorUID) > 0 {
			member.SponsorUID = null.StringFrom(event.SponsorUID)
		}
		if len(member.Email) == 0 {
			member.Email = event.Email
		}
		member.PackageBV = event.PackageBV
		member.LastActivityAt = now
	}

	node, err := e.Place(event.CompanyID, event.MemberUID, event.SponsorUID, event.RequestedSide)
	if err != nil {
		return nil, err
	}

	if node.ParentID.Valid {
		member.PlacementID = node.ParentID
		member.PlacementSide = node.ParentSide
	}
	if err := e.store.UpdateMember(member); err != nil {
		return nil, err
	}

	var sponsor *models.Member
	if member.HavingSponsor() {
		if sponsor, err = e.store.Member(event.CompanyID, member.SponsorUID.String); err == nil {
			sponsor.DirectsCount += 1
			sponsor.LastActivityAt = now
			if err := e.store.UpdateMember(sponsor); err != nil {
				return nil, err
			}
		} else {
			sponsor = nil
		}
	}

	if err := e.ApplyCountDelta(event.CompanyID, node, 1); err != nil {
		return nil, err
	}

	result := &PipelineResult{Node: node, Incomes: []*models.IncomeTransaction{}}

	if event.PackageBV.IsPositive() {
		if err := e.settleVolume(event.CompanyID, event.MemberUID, event.PackageBV, now, result); err != nil {
			return result, err
		}

		if sponsor != nil {
			mlm_config, err := e.store.Config(event.CompanyID)
			if err != nil {
				return result, err
			}

			if income, err := e.postPercentIncome(mlm_config.DirectPercent, types.IncomeDirectReferral, sponsor.UID, event.MemberUID, event.CompanyID, event.PackageBV, now); err != nil {
				return result, err
			} else if income != nil {
				result.Incomes = append(result.Incomes, income)
			}
		}

		sponsor_incomes, err := e.EvaluateSponsorMatching(event.CompanyID, event.MemberUID, event.PackageBV, now)
		if err != nil {
			return result, err
		}
		result.Incomes = append(result.Incomes, sponsor_incomes...)
	}

	e.reevaluateRanks(event.CompanyID, event.MemberUID, sponsor, now, result)

	return result, nil
}

// ProcessPurchase applies a repurchase of amount_bv for an existing member.
func (e *Engine) ProcessPurchase(event PurchaseEvent, now time.Time) (*PipelineResult, error) {
	member, err := e.store.Member(event.CompanyID, event.MemberUID)
	if err != nil {
		return nil, ErrNotFound
	}

	if !event.AmountBV.IsPositive() {
		return nil, &InvariantViolation{Detail: "non-positive purchase volume " + event.AmountBV.String()}
	}

	member.PackageBV = event.AmountBV
	member.LastActivityAt = now
	if err := e.store.UpdateMember(member); err != nil {
		return nil, err
	}

	node, err := e.store.NodeByMember(event.CompanyID, event.MemberUID)
	if err != nil {
		return nil, ErrNotFound
	}

	result := &PipelineResult{Node: node, Incomes: []*models.IncomeTransaction{}}

	if err := e.settleVolume(event.CompanyID, event.MemberUID, event.AmountBV, now, result); err != nil {
		return result, err
	}

	var sponsor *models.Member
	if member.HavingSponsor() {
		if sponsor, err = e.store.Member(event.CompanyID, member.SponsorUID.String); err == nil {
			mlm_config, err := e.store.Config(event.CompanyID)
			if err != nil {
				return result, err
			}

			if income, err := e.postPercentIncome(mlm_config.RepurchasePercent, types.IncomeRepurchase, sponsor.UID, event.MemberUID, event.CompanyID, event.AmountBV, now); err != nil {
				return result, err
			} else if income != nil {
				result.Incomes = append(result.Incomes, income)
			}
		} else {
			sponsor = nil
		}
	}

	sponsor_incomes, err := e.EvaluateSponsorMatching(event.CompanyID, event.MemberUID, event.AmountBV, now)
	if err != nil {
		return result, err
	}
	result.Incomes = append(result.Incomes, sponsor_incomes...)

	e.reevaluateRanks(event.CompanyID, event.MemberUID, sponsor, now, result)

	return result, nil
}

// settleVolume propagates the delta and runs matching on every ancestor the
// propagation reached.
func (e *Engine) settleVolume(company_id string, member_uid string, delta decimal.Decimal, now time.Time, result *PipelineResult) error {
	ancestors, err := e.ApplyVolumeDelta(company_id, member_uid, delta)
	if err != nil {
		return err
	}

	for _, ancestor_id := range ancestors {
		income, err := e.EvaluateMatching(company_id, ancestor_id, now)
		if err != nil {
			return err
		}
		if income != nil {
			result.Incomes = append(result.Incomes, income)
		}
	}

	return nil
}

func (e *Engine) postPercentIncome(percent decimal.Decimal, income_type types.IncomeType, member_uid string, related_uid string, company_id string, base decimal.Decimal, now time.Time) (*models.IncomeTransaction, error) {
	if !percent.IsPositive() {
		return nil, nil
	}

	amount := base.Mul(percent).Div(decimal.NewFromInt(100)).Round(volumePrecision)
	if !amount.IsPositive() {
		return nil, nil
	}

	income := &models.IncomeTransaction{
		UUID:       uuid.New(),
		CompanyID:  company_id,
		MemberUID:  member_uid,
		IncomeType: income_type,
		Amount:     amount,
		RelatedUID: related_uid,
		Status:     types.IncomePending,
		CreatedAt:  now,
	}

	if err := e.store.CreateIncome(income); err != nil {
		return nil, err
	}

	return income, nil
}

// reevaluateRanks re-runs rank evaluation for everyone whose aggregates the
// event changed: the member, the sponsor and every beneficiary of a new
// income transaction. Rank evaluation never fails the pipeline.
func (e *Engine) reevaluateRanks(company_id string, member_uid string, sponsor *models.Member, now time.Time, result *PipelineResult) {
	seen := map[string]bool{}

	candidates := []string{member_uid}
	if sponsor != nil {
		candidates = append(candidates, sponsor.UID)
	}
	for _, income := range result.Incomes {
		candidates = append(candidates, income.MemberUID)
	}

	for _, uid := range candidates {
		if seen[uid] {
			continue
		}
		seen[uid] = true

		if _, income, err := e.EvaluateRank(company_id, uid, now); err == nil && income != nil {
			result.Incomes = append(result.Incomes, income)
		}
	}
}
