package engines

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/engine"
	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/mq_client"
)

type IncomeExecutorPayload struct {
	CompanyID string    `json:"company_id"`
	UUID      uuid.UUID `json:"uuid"`
}

type IncomeExecutorWorker struct {
	store *engine.GormStore
}

func NewIncomeExecutorWorker() *IncomeExecutorWorker {
	return &IncomeExecutorWorker{store: engine.NewGormStore()}
}

// Process credits one income transaction into the member wallet. Crediting
// is idempotent on the transaction uuid, so redelivery is harmless.
func (w *IncomeExecutorWorker) Process(payload []byte) error {
	var executor_payload IncomeExecutorPayload

	if err := json.Unmarshal(payload, &executor_payload); err != nil {
		return err
	}

	wallet, err := w.store.CreditIncome(executor_payload.CompanyID, executor_payload.UUID)
	if err != nil {
		return err
	}

	wallet.TriggerEvent()

	var income *models.IncomeTransaction
	if result := config.DataBase.First(&income, "company_id = ? AND uuid = ?", executor_payload.CompanyID, executor_payload.UUID); result.Error == nil {
		income.TriggerEvent()

		payload_message, _ := json.Marshal(income)
		config.Nats.Publish("influx_writer", payload_message)

		// The dashboard gateway consumes credited incomes off amqp.
		mq_client.Enqueue("events_processor", payload_message)
	}

	return nil
}
