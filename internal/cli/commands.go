package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wartimekillers/snapxchange/internal/format"
	"github.com/wartimekillers/snapxchange/internal/model"
	"github.com/wartimekillers/snapxchange/internal/service"
	"github.com/wartimekillers/snapxchange/internal/session"
)

// ServiceProvider создает сервис лениво, чтобы --help не трогал сеть и Redis.
type ServiceProvider func() service.ExchangeServiceInterface

func QuoteCmd(provide ServiceProvider) *cobra.Command {
	var direction string
	cmd := &cobra.Command{
		Use:   "quote AMOUNT",
		Short: "Show buy/sell rates and the converted amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := model.ParseDirection(direction)
			if err != nil {
				return err
			}
			conv, err := provide().Convert(cmd.Context(), d, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s -> %s %s\n", conv.Amount, d.From(), conv.Converted, d.To())
			fmt.Fprintf(out, "rate: %s\n", conv.Rate.StringFixed(6))
			if conv.Stale {
				fmt.Fprintln(out, "warning: rates are stale")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&direction, "direction", "d", "vnd-idr", "vnd-idr or idr-vnd")
	return cmd
}

func LinkCmd(provide ServiceProvider) *cobra.Command {
	var direction string
	cmd := &cobra.Command{
		Use:   "link AMOUNT",
		Short: "Print the WhatsApp order link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := model.ParseDirection(direction)
			if err != nil {
				return err
			}
			link, err := provide().Order(cmd.Context(), d, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link.URL)
			return nil
		},
	}
	cmd.Flags().StringVarP(&direction, "direction", "d", "vnd-idr", "vnd-idr or idr-vnd")
	return cmd
}

func ShellCmd(provide ServiceProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive calculator: type amounts, 'switch' to flip direction, 'quit' to exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunShell(cmd.Context(), provide(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// RunShell читает команды построчно. Курсы перезапрашиваются после каждого
// изменения суммы или направления. Ошибка запроса оставляет прежние курсы.
func RunShell(ctx context.Context, svc service.ExchangeServiceInterface, in io.Reader, out io.Writer) error {
	s := session.New()
	refresh := func() {
		ticket, amount := s.Begin()
		quote, err := svc.Rates(ctx, amount)
		if err != nil {
			fmt.Fprintf(out, "rates unavailable: %v\n", err)
			return
		}
		s.Apply(ticket, quote.Quote)
	}
	show := func() {
		snap := s.Snapshot()
		if snap.Quote != nil {
			fmt.Fprintf(out, "[%s] buy %s sell %s\n", snap.Direction,
				snap.Quote.For(snap.Direction).Buy.StringFixed(6),
				snap.Quote.For(snap.Direction).Sell.StringFixed(6))
		}
		if snap.Converted != "" {
			fmt.Fprintf(out, "%s %s = %s %s\n", snap.Amount, snap.Direction.From(), snap.Converted, snap.Direction.To())
		}
	}

	refresh()
	show()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s> ", s.Snapshot().Direction.From())
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "quit", "exit":
			return nil
		case "switch":
			fmt.Fprintf(out, "direction: %s\n", s.Switch())
		default:
			if !s.Input(line) {
				fmt.Fprintf(out, "ignored: %v\n", format.ErrInvalidAmount)
				continue
			}
		}
		refresh()
		show()
	}
}
