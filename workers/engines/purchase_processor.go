package engines

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/engine"
)

type PurchaseProcessorWorker struct {
	engine *engine.Engine
}

func NewPurchaseProcessorWorker() *PurchaseProcessorWorker {
	return &PurchaseProcessorWorker{engine: engine.New(engine.NewGormStore())}
}

func (w *PurchaseProcessorWorker) Process(payload []byte) error {
	var event engine.PurchaseEvent

	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	result, err := w.engine.ProcessPurchase(event, time.Now())
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			config.Logger.Errorf("Purchase for unknown member %s dropped", event.MemberUID)
			return nil
		}

		var invariant_violation *engine.InvariantViolation
		if errors.As(err, &invariant_violation) {
			config.Logger.Errorf("Purchase for %s rejected: %v", event.MemberUID, err)
			return nil
		}

		return err
	}

	dispatchIncomes(result.Incomes)

	return nil
}
