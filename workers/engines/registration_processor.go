package engines

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/engine"
	"github.com/teamvolt/binex/models"
)

type RegistrationProcessorWorker struct {
	engine *engine.Engine
}

func NewRegistrationProcessorWorker() *RegistrationProcessorWorker {
	return &RegistrationProcessorWorker{engine: engine.New(engine.NewGormStore())}
}

func (w *RegistrationProcessorWorker) Process(payload []byte) error {
	var event engine.RegistrationEvent

	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	result, err := w.engine.ProcessRegistration(event, time.Now())
	if err != nil {
		var placement_error *engine.PlacementError
		if errors.As(err, &placement_error) {
			// Redelivery cannot fix a bad placement request; the operator
			// has to retry with a valid sponsor or side.
			config.Logger.Errorf("Registration of %s rejected: %v", event.MemberUID, err)
			return nil
		}

		return err
	}

	dispatchIncomes(result.Incomes)

	return nil
}

func dispatchIncomes(incomes []*models.IncomeTransaction) {
	for _, income := range incomes {
		income.TriggerEvent()

		payload_message, err := json.Marshal(IncomeExecutorPayload{
			CompanyID: income.CompanyID,
			UUID:      income.UUID,
		})
		if err != nil {
			continue
		}

		config.Nats.Publish("income_executor", payload_message)
	}
}
