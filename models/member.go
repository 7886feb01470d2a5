package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/teamvolt/binex/config"
)

type Member struct {
	ID             uint64          `json:"id" gorm:"primaryKey"`
	UID            string          `json:"uid" gorm:"index:idx_members_company_uid,unique"`
	CompanyID      string          `json:"company_id" gorm:"index:idx_members_company_uid,unique"`
	Email          string          `json:"email"`
	Role           string          `json:"role"`
	State          string          `json:"state" gorm:"default:active"`
	SponsorUID     null.String     `json:"sponsor_uid"`
	PlacementID    null.Uint64     `json:"placement_id"`
	PlacementSide  null.String     `json:"placement_side"`
	PackageBV      decimal.Decimal `json:"package_bv" gorm:"default:0.0"`
	RankLevel      int32           `json:"rank_level" gorm:"default:0"`
	DirectsCount   int64           `json:"directs_count" gorm:"default:0"`
	LastActivityAt time.Time       `json:"last_activity_at"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (m *Member) GetWallet() *Wallet {
	var wallet *Wallet

	config.DataBase.FirstOrCreate(&wallet, Wallet{CompanyID: m.CompanyID, MemberUID: m.UID})

	return wallet
}

func (m *Member) HavingSponsor() bool {
	return m.SponsorUID.Valid
}

func (m *Member) Sponsor() *Member {
	if !m.SponsorUID.Valid {
		return nil
	}

	var member *Member

	config.DataBase.First(&member, "company_id = ? AND uid = ?", m.CompanyID, m.SponsorUID.String)

	return member
}

func (m *Member) Node() *TreeNode {
	var node *TreeNode

	if result := config.DataBase.First(&node, "company_id = ? AND member_uid = ?", m.CompanyID, m.UID); result.Error != nil {
		return nil
	}

	return node
}

func (m *Member) InactiveFor(days int64, now time.Time) bool {
	if days <= 0 {
		return false
	}

	return now.Sub(m.LastActivityAt) > time.Duration(days)*24*time.Hour
}
