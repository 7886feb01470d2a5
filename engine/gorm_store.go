package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/types"
)

// GormStore runs the engine against the shared database connection.
type GormStore struct {
}

func NewGormStore() *GormStore {
	return &GormStore{}
}

func (s *GormStore) Config(company_id string) (*models.MLMConfig, error) {
	return models.GetMLMConfig(company_id)
}

func (s *GormStore) Member(company_id string, uid string) (*models.Member, error) {
	var member *models.Member

	if result := config.DataBase.First(&member, "company_id = ? AND uid = ?", company_id, uid); result.Error != nil {
		return nil, result.Error
	}

	return member, nil
}

func (s *GormStore) CreateMember(member *models.Member) error {
	return config.DataBase.Create(member).Error
}

func (s *GormStore) UpdateMember(member *models.Member) error {
	return config.DataBase.Save(member).Error
}

func (s *GormStore) Node(company_id string, id uint64) (*models.TreeNode, error) {
	var node *models.TreeNode

	if result := config.DataBase.First(&node, "company_id = ? AND id = ?", company_id, id); result.Error != nil {
		return nil, result.Error
	}

	return node, nil
}

func (s *GormStore) NodeByMember(company_id string, uid string) (*models.TreeNode, error) {
	var node *models.TreeNode

	if result := config.DataBase.First(&node, "company_id = ? AND member_uid = ?", company_id, uid); result.Error != nil {
		return nil, result.Error
	}

	return node, nil
}

func (s *GormStore) CreateNode(node *models.TreeNode) error {
	return config.DataBase.Create(node).Error
}

func (s *GormStore) UpdateNode(node *models.TreeNode) error {
	result := config.DataBase.Model(&models.TreeNode{}).
		Where("id = ? AND company_id = ? AND lock_version = ?", node.ID, node.CompanyID, node.LockVersion).
		Updates(map[string]interface{}{
			"parent_id":    node.ParentID,
			"parent_side":  node.ParentSide,
			"left_id":      node.LeftID,
			"right_id":     node.RightID,
			"own_volume":   node.OwnVolume,
			"left_volume":  node.LeftVolume,
			"right_volume": node.RightVolume,
			"total_volume": node.TotalVolume,
			"left_count":   node.LeftCount,
			"right_count":  node.RightCount,
			"total_count":  node.TotalCount,
			"lock_version": node.LockVersion + 1,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	node.LockVersion += 1

	return nil
}

func (s *GormStore) CreateIncome(income *models.IncomeTransaction) error {
	return config.DataBase.Create(income).Error
}

func (s *GormStore) IncomeInWindow(company_id string, member_uid string, income_type types.IncomeType, from time.Time, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}

	result := config.DataBase.
		Model(&models.IncomeTransaction{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where(
			"company_id = ? AND member_uid = ? AND income_type = ? AND status <> ? AND created_at >= ? AND created_at < ?",
			company_id, member_uid, income_type, types.IncomeCancelled, from, to,
		).
		Find(&row)

	return row.Total, result.Error
}

func (s *GormStore) PairsTotal(company_id string, member_uid string) (int64, error) {
	var row struct {
		Pairs int64
	}

	result := config.DataBase.
		Model(&models.IncomeTransaction{}).
		Select("COALESCE(SUM(pair_count), 0) as pairs").
		Where(
			"company_id = ? AND member_uid = ? AND income_type = ? AND status <> ?",
			company_id, member_uid, types.IncomeBinaryMatching, types.IncomeCancelled,
		).
		Find(&row)

	return row.Pairs, result.Error
}

func (s *GormStore) CreditIncome(company_id string, id uuid.UUID) (*models.Wallet, error) {
	var wallet *models.Wallet

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		var income *models.IncomeTransaction

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND uuid = ?", company_id, id).
			First(&income).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			FirstOrCreate(&wallet, models.Wallet{CompanyID: company_id, MemberUID: income.MemberUID}).Error; err != nil {
			return err
		}

		if income.Status == types.IncomeCredited {
			return nil
		}
		if income.Status == types.IncomeCancelled {
			return errors.New("income cancelled")
		}

		if income.Amount.IsPositive() {
			if err := wallet.PlusFunds(tx, income.Amount); err != nil {
				return err
			}
		}

		income.Status = types.IncomeCredited

		return tx.Save(&income).Error
	})

	return wallet, err
}

func (s *GormStore) Wallet(company_id string, member_uid string) (*models.Wallet, error) {
	var wallet *models.Wallet

	if result := config.DataBase.FirstOrCreate(&wallet, models.Wallet{CompanyID: company_id, MemberUID: member_uid}); result.Error != nil {
		return nil, result.Error
	}

	return wallet, nil
}
