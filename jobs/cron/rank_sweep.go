package cron

import (
	"encoding/json"
	"time"

	"github.com/jasonlvhit/gocron"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/engine"
	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/workers/engines"
)

// RankSweepJob re-evaluates ranks for the whole member base once a day.
// Event-driven evaluation already covers members touched by a pipeline run;
// the sweep catches thresholds crossed by config changes.
type RankSweepJob struct {
}

func (j *RankSweepJob) Process() {
	s := gocron.NewScheduler()
	s.Every(1).Day().At("00:30:00").Do(sweepRanks)
	<-s.Start()
}

func sweepRanks() {
	var members []*models.Member

	config.DataBase.Where("state = ?", "active").Find(&members)

	e := engine.New(engine.NewGormStore())
	now := time.Now()

	for _, member := range members {
		rank, income, err := e.EvaluateRank(member.CompanyID, member.UID, now)
		if err != nil {
			config.Logger.Errorf("Rank sweep failed for %s: %v", member.UID, err)
			continue
		}

		if rank != nil {
			config.Logger.Infof("Member %s advanced to rank %s", member.UID, rank.Title)
		}

		if income != nil {
			income.TriggerEvent()

			payload_message, _ := json.Marshal(engines.IncomeExecutorPayload{
				CompanyID: income.CompanyID,
				UUID:      income.UUID,
			})
			config.Nats.Publish("income_executor", payload_message)
		}
	}
}
