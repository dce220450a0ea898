package generator

import (
	// Go Internal Packages
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	// Local Packages
	models "tx-injector/models"

	// External Packages
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var randomOpts = Options{RandomEnabled: true, AmountMin: 10, AmountMax: 1000, OrderIDPrefix: "CMD-"}

func TestGenerateRandomAmountInRange(t *testing.T) {
	g := NewSeededTxGenerator(randomOpts, 1, 2)
	for i := 0; i < 10000; i++ {
		tx := g.Generate()
		require.GreaterOrEqual(t, tx.Amount, 10.0)
		require.Less(t, tx.Amount, 1000.0)
		require.True(t, tx.PaymentMethod.Valid())
	}
}

func TestSampleAmountStaysBelowMax(t *testing.T) {
	largest := math.Nextafter(1, 0)

	got := sampleAmount(1, 3, largest)
	assert.Less(t, got, 3.0)
	assert.Equal(t, math.Nextafter(3, 1), got)

	assert.Equal(t, 1.0, sampleAmount(1, 3, 0))
	assert.Equal(t, 2.0, sampleAmount(1, 3, 0.5))
}

func TestGenerateFixed(t *testing.T) {
	g := NewTxGenerator(Options{RandomEnabled: false, AmountMin: 42.5, AmountMax: 1000, OrderIDPrefix: "CMD-"})
	for i := 0; i < 100; i++ {
		tx := g.Generate()
		assert.Equal(t, 42.5, tx.Amount)
		assert.Equal(t, models.Card, tx.PaymentMethod)
	}
}

func TestGenerateMethodDistribution(t *testing.T) {
	const trials = 40000
	g := NewSeededTxGenerator(randomOpts, 7, 11)

	counts := make(map[models.PaymentMethod]int)
	for i := 0; i < trials; i++ {
		counts[g.Generate().PaymentMethod]++
	}

	require.Len(t, counts, len(models.PaymentMethods))
	expected := float64(trials) / float64(len(models.PaymentMethods))
	for _, m := range models.PaymentMethods {
		assert.InEpsilon(t, expected, float64(counts[m]), 0.05, "method %s", m)
	}
}

func TestGenerateOrderID(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z0-9]{8}$`)
	for _, prefix := range []string{"CMD-", "ORD_", ""} {
		g := NewTxGenerator(Options{RandomEnabled: true, AmountMin: 1, AmountMax: 2, OrderIDPrefix: prefix})
		for i := 0; i < 200; i++ {
			id := g.Generate().OrderID
			require.True(t, strings.HasPrefix(id, prefix), id)
			assert.Regexp(t, re, strings.TrimPrefix(id, prefix))
		}
	}
}

func TestGenerateIdentityAndTimestamp(t *testing.T) {
	g := NewTxGenerator(randomOpts)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	a, b := g.Generate(), g.Generate()
	assert.NotEqual(t, a.TxID, b.TxID)
	_, err := uuid.Parse(a.TxID)
	assert.NoError(t, err)
	assert.Equal(t, fixed.UnixMilli(), a.Timestamp)
}

func TestGeneratorsAreIndependent(t *testing.T) {
	a := NewSeededTxGenerator(randomOpts, 3, 4)
	b := NewSeededTxGenerator(randomOpts, 3, 4)
	for i := 0; i < 50; i++ {
		ta, tb := a.Generate(), b.Generate()
		assert.Equal(t, ta.Amount, tb.Amount)
		assert.Equal(t, ta.PaymentMethod, tb.PaymentMethod)
	}
}
