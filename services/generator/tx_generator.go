package generator

import (
	// Go Internal Packages
	"math"
	"math/rand/v2"
	"sync"
	"time"

	// Local Packages
	models "tx-injector/models"
	utils "tx-injector/utils"

	// External Packages
	"github.com/google/uuid"
)

const orderSuffixLen = 8

type Options struct {
	RandomEnabled bool
	AmountMin     float64
	AmountMax     float64
	OrderIDPrefix string
}

// TxGenerator builds synthetic transactions. Every instance owns its random source.
type TxGenerator struct {
	opts    Options
	methods []models.PaymentMethod

	mu  sync.Mutex
	rnd *rand.Rand

	now   func() time.Time
	newID func() string
}

func NewTxGenerator(opts Options) *TxGenerator {
	return &TxGenerator{
		opts:    opts,
		methods: models.PaymentMethods,
		rnd:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// NewSeededTxGenerator is NewTxGenerator with a fixed seed, for reproducible runs.
func NewSeededTxGenerator(opts Options, seed1, seed2 uint64) *TxGenerator {
	g := NewTxGenerator(opts)
	g.rnd = rand.New(rand.NewPCG(seed1, seed2))
	return g
}

// Generate returns a new transaction with a fresh id and the current timestamp.
func (g *TxGenerator) Generate() models.Transaction {
	amount, method := g.draw()
	return models.Transaction{
		TxID:          g.newID(),
		Amount:        amount,
		PaymentMethod: method,
		OrderID:       g.opts.OrderIDPrefix + utils.ShortID(orderSuffixLen),
		Timestamp:     utils.EpochMillis(g.now()),
	}
}

func (g *TxGenerator) draw() (float64, models.PaymentMethod) {
	if !g.opts.RandomEnabled {
		return g.opts.AmountMin, g.methods[0]
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	amount := sampleAmount(g.opts.AmountMin, g.opts.AmountMax, g.rnd.Float64())
	return amount, g.methods[g.rnd.IntN(len(g.methods))]
}

// sampleAmount maps u in [0, 1) onto [lo, hi). Rounding can land exactly on hi, so
// that case falls back to the largest float below it.
func sampleAmount(lo, hi, u float64) float64 {
	amount := lo + (hi-lo)*u
	if amount >= hi {
		return math.Nextafter(hi, lo)
	}
	return amount
}
