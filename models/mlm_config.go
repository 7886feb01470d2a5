package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/models/datatypes"
	"github.com/teamvolt/binex/types"
)

// MLMConfig is the per-tenant compensation plan. It is written by the
// company-admin API and read-only to the engine; one pipeline run works on a
// single snapshot.
type MLMConfig struct {
	ID                  uint64                  `json:"id" gorm:"primaryKey"`
	CompanyID           string                  `json:"company_id" gorm:"uniqueIndex"`
	SpilloverMode       types.SpilloverMode     `json:"spillover_mode" gorm:"default:auto"`
	DirectPercent       decimal.Decimal         `json:"direct_percent" gorm:"default:0.0"`
	RepurchasePercent   decimal.Decimal         `json:"repurchase_percent" gorm:"default:0.0"`
	SponsorAutoDisable  bool                    `json:"sponsor_auto_disable" gorm:"default:false"`
	SponsorInactiveDays int64                   `json:"sponsor_inactive_days" gorm:"default:0"`
	Timezone            string                  `json:"timezone" gorm:"default:UTC"`
	BinaryRule          datatypes.BinaryRule    `json:"binary_rule"`
	SponsorLevels       datatypes.SponsorLevels `json:"sponsor_levels"`
	Ranks               datatypes.Ranks         `json:"ranks"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

// Validate rejects contradictory plans at config-write time, never at
// evaluation time.
func (c *MLMConfig) Validate() error {
	if c.BinaryRule.CarryForward && c.BinaryRule.FlushOut {
		return errors.New("admin.config.carry_forward_and_flush_out")
	}

	if c.SpilloverMode != types.SpilloverAuto && c.SpilloverMode != types.SpilloverManual {
		return errors.New("admin.config.invalid_spillover_mode")
	}

	switch c.BinaryRule.CappingPeriod {
	case types.PeriodDay, types.PeriodWeek, types.PeriodMonth:
	default:
		return errors.New("admin.config.invalid_capping_period")
	}

	switch c.BinaryRule.WeakLeg {
	case types.WeakLegLeft, types.WeakLegRight, types.WeakLegSmaller:
	default:
		return errors.New("admin.config.invalid_weak_leg")
	}

	if !c.BinaryRule.PairRatioUnit.IsPositive() {
		return errors.New("admin.config.non_positive_pair_ratio_unit")
	}

	if c.BinaryRule.PairIncome.IsNegative() || c.BinaryRule.CappingAmount.IsNegative() {
		return errors.New("admin.config.negative_binary_amount")
	}

	if c.DirectPercent.IsNegative() || c.RepurchasePercent.IsNegative() {
		return errors.New("admin.config.negative_percent")
	}

	for _, level := range c.SponsorLevels {
		if level.Percentage.IsNegative() {
			return errors.New("admin.config.negative_sponsor_percentage")
		}
	}

	for _, rank := range c.Ranks {
		if rank.Level <= 0 {
			return errors.New("admin.config.non_positive_rank_level")
		}
		if rank.Reward.IsNegative() {
			return errors.New("admin.config.negative_rank_reward")
		}
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return errors.New("admin.config.invalid_timezone")
	}

	return nil
}

func (c *MLMConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

func (c *MLMConfig) CacheKey() string {
	return "mlm_config:" + c.CompanyID
}

// GetMLMConfig reads the tenant plan through the redis cache.
func GetMLMConfig(company_id string) (*MLMConfig, error) {
	mlm_config := &MLMConfig{CompanyID: company_id}

	if config.Redis != nil {
		if err := config.Redis.GetObject(mlm_config.CacheKey(), mlm_config); err == nil {
			return mlm_config, nil
		}
	}

	if result := config.DataBase.First(&mlm_config, "company_id = ?", company_id); result.Error != nil {
		return nil, result.Error
	}

	if config.Redis != nil {
		config.Redis.SetObject(mlm_config.CacheKey(), mlm_config, 10*time.Minute)
	}

	return mlm_config, nil
}
