package engines

import (
	"encoding/json"

	"github.com/teamvolt/binex/models"
)

type InfluxWriterWorker struct {
}

func NewInfluxWriterWorker() *InfluxWriterWorker {
	return &InfluxWriterWorker{}
}

func (w *InfluxWriterWorker) Process(payload []byte) error {
	var income models.IncomeTransaction

	if err := json.Unmarshal(payload, &income); err != nil {
		return err
	}

	income.WriteToInflux()

	return nil
}
