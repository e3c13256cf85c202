package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/wartimekillers/snapxchange/internal/config"
	"github.com/wartimekillers/snapxchange/internal/model"
)

// BaseRates - кросс-курсы без маржи
type BaseRates struct {
	VNDToIDR decimal.Decimal
	IDRToVND decimal.Decimal
}

// Band - цена покупки и продажи
type Band struct {
	Buy  decimal.Decimal
	Sell decimal.Decimal
}

// Quote - котировка для обоих направлений при одной марже
type Quote struct {
	Margin   decimal.Decimal
	VNDToIDR Band
	IDRToVND Band
}

// For возвращает полосу для направления
func (q Quote) For(d model.Direction) Band {
	if d == model.IDRToVND {
		return q.IDRToVND
	}
	return q.VNDToIDR
}

type Pricer struct {
	cfg config.PricingConfig
}

func NewPricer(cfg config.PricingConfig) *Pricer {
	return &Pricer{cfg: cfg}
}

// MarginFor: сумма строго больше порога получает пониженную маржу.
func (p *Pricer) MarginFor(amount decimal.Decimal) decimal.Decimal {
	if amount.GreaterThan(p.cfg.Threshold) {
		return p.cfg.MarginLarge
	}
	return p.cfg.MarginLow
}

func BandFor(base, margin decimal.Decimal) Band {
	one := decimal.NewFromInt(1)
	return Band{
		Buy:  base.Mul(one.Sub(margin)),
		Sell: base.Mul(one.Add(margin)),
	}
}

// Quote считает полосы для обоих направлений независимо.
func (p *Pricer) Quote(base BaseRates, amount decimal.Decimal) Quote {
	margin := p.MarginFor(amount)
	return Quote{
		Margin:   margin,
		VNDToIDR: BandFor(base.VNDToIDR, margin),
		IDRToVND: BandFor(base.IDRToVND, margin),
	}
}
