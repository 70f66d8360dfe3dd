// Package generator produz uma base sintética de registros diários para demonstração
package generator

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/north-star-api/internal/domain"
	"github.com/vfg2006/north-star-api/pkg/utils"
)

const (
	DefaultSeed = 42
	DefaultDays = 90

	baseRevenue       = 2000.0
	seasonality       = 0.2
	revenueNoiseSigma = 300.0
	minTargetMER      = 3.0
	maxTargetMER      = 6.0
	minCOGSRatio      = 0.30
	maxCOGSRatio      = 0.40
	minGatewayRatio   = 0.02
	maxGatewayRatio   = 0.03
	averageTicket     = 150.0
)

var (
	ErrInvalidDays     = errors.New("generator: days must be positive")
	ErrEmptyDataset    = errors.New("generator: dataset is empty")
	ErrNegativeRevenue = errors.New("generator: negative revenue found")
)

// RecordWriter recebe a base gerada
type RecordWriter interface {
	Save(ctx context.Context, records domain.RecordSet) error
}

type Generator struct {
	seed int64
	now  func() time.Time
}

type Option func(*Generator)

func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithClock fixa o "hoje" usado como fim do intervalo gerado
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{
		seed: DefaultSeed,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate cria days+1 registros cobrindo [hoje-days, hoje], um por dia.
// A mesma semente e o mesmo relógio produzem sempre a mesma base.
func (g *Generator) Generate(days int) (domain.RecordSet, error) {
	if days <= 0 {
		return nil, ErrInvalidDays
	}

	rng := rand.New(rand.NewSource(g.seed))

	end := domain.TruncateToDay(g.now())
	start := end.AddDate(0, 0, -days)

	records := make(domain.RecordSet, 0, days+1)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		records = append(records, g.day(rng, date))
	}

	return records, nil
}

func (g *Generator) day(rng *rand.Rand, date time.Time) domain.DailyRecord {
	wave := math.Sin(float64(date.YearDay()) / 365 * 2 * math.Pi)
	revenue := baseRevenue*(1+wave*seasonality) + rng.NormFloat64()*revenueNoiseSigma
	revenue = math.Max(0, revenue)

	targetMER := uniform(rng, minTargetMER, maxTargetMER)
	return domain.DailyRecord{
		Date:         date,
		Revenue:      utils.RoundWithTwoDecimalPlace(revenue),
		AdSpend:      utils.RoundWithTwoDecimalPlace(revenue / targetMER),
		COGS:         utils.RoundWithTwoDecimalPlace(revenue * uniform(rng, minCOGSRatio, maxCOGSRatio)),
		GatewayFees:  utils.RoundWithTwoDecimalPlace(revenue * uniform(rng, minGatewayRatio, maxGatewayRatio)),
		NewCustomers: newCustomers(revenue),
	}
}

// newCustomers usa a receita antes do arredondamento para centavos
func newCustomers(revenue float64) int {
	return int(revenue / averageTicket)
}

// Validate confere a base antes de ser persistida
func Validate(records domain.RecordSet) error {
	if len(records) == 0 {
		return ErrEmptyDataset
	}

	for _, record := range records {
		if record.Revenue < 0 {
			return errors.Wrapf(ErrNegativeRevenue, "em %s", record.Date.Format(time.DateOnly))
		}
	}

	return nil
}

// Run gera, valida e grava a base
func (g *Generator) Run(ctx context.Context, writer RecordWriter, days int) (domain.RecordSet, error) {
	records, err := g.Generate(days)
	if err != nil {
		return nil, err
	}

	if err := Validate(records); err != nil {
		return nil, err
	}

	if err := writer.Save(ctx, records); err != nil {
		return nil, errors.Wrap(err, "generator: erro ao gravar base")
	}

	first, last, _ := records.Bounds()
	logrus.WithFields(logrus.Fields{
		"records": len(records),
		"start":   first.Format(time.DateOnly),
		"end":     last.Format(time.DateOnly),
	}).Info("generator: base sintética gravada")

	return records, nil
}

func uniform(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
