package models

import (
	// Go Internal Packages
	"encoding/json"
	"fmt"
)

// PaymentMethod is the closed set of payment methods a transaction can carry.
type PaymentMethod int32

const (
	Card PaymentMethod = iota
	Transfer
	PayPal
	Crypto
)

// PaymentMethods lists every method in declaration order. The first entry is the fixed
// method used when randomization is disabled.
var PaymentMethods = []PaymentMethod{Card, Transfer, PayPal, Crypto}

var paymentMethodNames = map[PaymentMethod]string{
	Card:     "CARD",
	Transfer: "TRANSFER",
	PayPal:   "PAYPAL",
	Crypto:   "CRYPTO",
}

func (m PaymentMethod) String() string {
	if name, ok := paymentMethodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("PaymentMethod(%d)", int32(m))
}

// Valid reports whether m is a member of PaymentMethods.
func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodNames[m]
	return ok
}

// ParsePaymentMethod is the inverse of String.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for m, name := range paymentMethodNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown payment method %q", s)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", m)
	}
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Transaction is the synthetic record published on every tick.
type Transaction struct {
	TxID          string        `json:"transaction_id"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	OrderID       string        `json:"order_id"`
	Timestamp     int64         `json:"timestamp"`
}
