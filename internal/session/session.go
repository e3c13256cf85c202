// Package session хранит состояние одного калькулятора: ввод, направление,
// текущий курс покупки и результат.
//
// Каждый запрос курсов получает номер поколения через Begin. Результат
// применяется только если его поколение последнее, поэтому медленный старый
// ответ не перетирает более свежий.
package session

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/wartimekillers/snapxchange/internal/convert"
	"github.com/wartimekillers/snapxchange/internal/format"
	"github.com/wartimekillers/snapxchange/internal/model"
	"github.com/wartimekillers/snapxchange/internal/pricing"
)

// Ticket - поколение запроса курсов
type Ticket uint64

type Snapshot struct {
	Direction model.Direction
	Amount    string
	Raw       string
	Rate      decimal.Decimal
	Quote     *pricing.Quote
	Converted string
}

type Session struct {
	mu         sync.Mutex
	direction  model.Direction
	amount     string
	raw        string
	rate       decimal.Decimal
	quote      *pricing.Quote
	converted  string
	generation Ticket
}

func New() *Session {
	return &Session{}
}

// Input принимает текст из поля ввода. false - ввод отклонен, состояние не изменилось.
func (s *Session) Input(text string) bool {
	raw, err := format.Accept(text)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	s.amount = format.Group(raw)
	s.recompute()
	return true
}

// Switch меняет направление и очищает сумму и результат.
func (s *Session) Switch() model.Direction {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.direction = s.direction.Toggle()
	s.amount = ""
	s.raw = ""
	s.converted = ""
	if s.quote != nil {
		s.rate = s.quote.For(s.direction).Buy
	}
	return s.direction
}

// Begin открывает новое поколение и возвращает сумму, для которой нужны курсы.
func (s *Session) Begin() (Ticket, decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	amount := decimal.Zero
	if s.raw != "" {
		amount = decimal.RequireFromString(s.raw)
	}
	return s.generation, amount
}

// Apply применяет котировку. Ответ устаревшего поколения отбрасывается.
func (s *Session) Apply(t Ticket, q pricing.Quote) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.generation {
		return false
	}
	s.quote = &q
	s.rate = q.For(s.direction).Buy
	s.recompute()
	return true
}

func (s *Session) recompute() {
	s.converted = convert.Convert(s.raw, s.rate)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Direction: s.direction,
		Amount:    s.amount,
		Raw:       s.raw,
		Rate:      s.rate,
		Quote:     s.quote,
		Converted: s.converted,
	}
}
