package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	VND = "VND"
	IDR = "IDR"
)

var ErrInvalidDirection = errors.New("invalid direction")

// Direction - направление обмена. Нулевое значение - VND -> IDR.
type Direction int

const (
	VNDToIDR Direction = iota
	IDRToVND
)

func (d Direction) From() string {
	if d == IDRToVND {
		return IDR
	}
	return VND
}

func (d Direction) To() string {
	if d == IDRToVND {
		return VND
	}
	return IDR
}

func (d Direction) Toggle() Direction {
	if d == IDRToVND {
		return VNDToIDR
	}
	return IDRToVND
}

func (d Direction) String() string {
	return d.From() + " to " + d.To()
}

// Slug - короткая форма для query-параметров
func (d Direction) Slug() string {
	return strings.ToLower(d.From()) + "-" + strings.ToLower(d.To())
}

// ParseDirection принимает "vnd-idr", "idr-vnd" или "VND to IDR"/"IDR to VND".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vnd-idr", "vnd to idr":
		return VNDToIDR, nil
	case "idr-vnd", "idr to vnd":
		return IDRToVND, nil
	}
	return VNDToIDR, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// BandResponse - цены покупки и продажи для одного направления
type BandResponse struct {
	Buy  float64 `json:"buy"`
	Sell float64 `json:"sell"`
}

// RatesResponse - ответ /rates
type RatesResponse struct {
	Margin   float64      `json:"margin"`
	VNDToIDR BandResponse `json:"vnd_to_idr"`
	IDRToVND BandResponse `json:"idr_to_vnd"`
	Stale    bool         `json:"stale"`
}

// ConvertRequest - запрос на конвертацию
type ConvertRequest struct {
	Direction string `form:"direction"`
	Amount    string `form:"amount"` // с разделителями или без: "1,000" или "1000"
}

// ConvertResponse - ответ на конвертацию
type ConvertResponse struct {
	Direction string  `json:"direction"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Raw       string  `json:"raw"`
	Amount    string  `json:"amount"`
	Rate      float64 `json:"rate"`
	Converted string  `json:"converted,omitempty"`
	Stale     bool    `json:"stale"`
}

// OrderResponse - ссылка на заказ в мессенджере
type OrderResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// ErrorResponse - структура для ошибок
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}
