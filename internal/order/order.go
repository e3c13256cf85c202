package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/wartimekillers/snapxchange/internal/config"
	"github.com/wartimekillers/snapxchange/internal/model"
)

const messageTemplate = "Hi, I want to exchange %s %s to %s. Estimated: %s %s"

type Builder struct {
	service string
	phone   string
}

func NewBuilder(cfg config.OrderConfig) *Builder {
	return &Builder{service: cfg.Service, phone: cfg.Phone}
}

// Message - текст заказа для оператора
func Message(amount string, d model.Direction, converted string) string {
	return fmt.Sprintf(messageTemplate, amount, d.From(), d.To(), converted, d.To())
}

// Link строит https://<service>/<phone>?text=<message>.
func (b *Builder) Link(message string) string {
	return fmt.Sprintf("https://%s/%s?text=%s", b.service, b.phone, escape(message))
}

// escape кодирует пробелы как %20, а не "+"
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
