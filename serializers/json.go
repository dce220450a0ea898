package serializers

import (
	// Go Internal Packages
	"context"
	"encoding/json"

	// Local Packages
	config "tx-injector/config"
	errors "tx-injector/errors"
	models "tx-injector/models"
)

// JSONSerializer renders transactions as indented JSON objects.
type JSONSerializer struct{}

func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Format() string { return config.FormatJSON }

func (s *JSONSerializer) Serialize(_ context.Context, _ string, tx models.Transaction) ([]byte, error) {
	b, err := json.MarshalIndent(tx, "", "  ")
	if err != nil {
		return nil, errors.SerializeErr(s.Format(), tx.TxID, err)
	}
	return b, nil
}
