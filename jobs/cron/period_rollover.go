package cron

import (
	"time"

	"github.com/jasonlvhit/gocron"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/engine"
	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/types"
)

// PeriodRolloverJob flushes unmatched leg volume for tenants whose binary
// plan discards leftovers at the end of each capping period. It fires every
// hour because period boundaries land at different wall-clock times across
// tenant timezones.
type PeriodRolloverJob struct {
}

func (j *PeriodRolloverJob) Process() {
	s := gocron.NewScheduler()
	s.Every(1).Hour().Do(flushExpiredPeriods)
	<-s.Start()
}

func flushExpiredPeriods() {
	var mlm_configs []*models.MLMConfig

	config.DataBase.Find(&mlm_configs)

	e := engine.New(engine.NewGormStore())
	now := time.Now()

	for _, mlm_config := range mlm_configs {
		if !mlm_config.BinaryRule.FlushOut {
			continue
		}

		if !atPeriodBoundary(mlm_config, now) {
			continue
		}

		var nodes []*models.TreeNode
		config.DataBase.Where("company_id = ? AND (left_volume > 0 OR right_volume > 0)", mlm_config.CompanyID).Find(&nodes)

		for _, node := range nodes {
			if err := e.FlushOutNode(mlm_config.CompanyID, node.ID); err != nil {
				config.Logger.Errorf("Flush out failed for node %d: %v", node.ID, err)
			}
		}

		config.Logger.Infof("Flushed %d nodes for company %s", len(nodes), mlm_config.CompanyID)
	}
}

func atPeriodBoundary(mlm_config *models.MLMConfig, now time.Time) bool {
	local := now.In(mlm_config.Location())

	if local.Hour() != 0 {
		return false
	}

	switch mlm_config.BinaryRule.CappingPeriod {
	case types.PeriodWeek:
		return local.Weekday() == time.Monday
	case types.PeriodMonth:
		return local.Day() == 1
	default:
		return true
	}
}
