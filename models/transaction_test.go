package models

import (
	// Go Internal Packages
	"encoding/json"
	"testing"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethodNames(t *testing.T) {
	names := make([]string, 0, len(PaymentMethods))
	for _, m := range PaymentMethods {
		require.True(t, m.Valid())
		names = append(names, m.String())

		parsed, err := ParsePaymentMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	assert.Equal(t, []string{"CARD", "TRANSFER", "PAYPAL", "CRYPTO"}, names)
	assert.Equal(t, Card, PaymentMethods[0])
}

func TestPaymentMethodJSON(t *testing.T) {
	b, err := json.Marshal(Crypto)
	require.NoError(t, err)
	assert.Equal(t, `"CRYPTO"`, string(b))

	var m PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`"TRANSFER"`), &m))
	assert.Equal(t, Transfer, m)

	assert.Error(t, json.Unmarshal([]byte(`"CHEQUE"`), &m))
	_, err = json.Marshal(PaymentMethod(42))
	assert.Error(t, err)
	assert.False(t, PaymentMethod(42).Valid())
	assert.Equal(t, "PaymentMethod(42)", PaymentMethod(42).String())
}

func TestDeliveryFailed(t *testing.T) {
	assert.False(t, Delivery{Topic: "Transactions"}.Failed())
	assert.True(t, Delivery{Topic: "Transactions", Error: "broker down"}.Failed())
}
