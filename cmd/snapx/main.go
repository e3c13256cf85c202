package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/wartimekillers/snapxchange/internal/app"
	"github.com/wartimekillers/snapxchange/internal/cli"
	"github.com/wartimekillers/snapxchange/internal/config"
	"github.com/wartimekillers/snapxchange/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "snapx",
	Short: "VND <-> IDR exchange calculator",
	Long: `snapx quotes VND/IDR exchanges from live public rates with the SnapXchange margin
and builds the WhatsApp link for placing the order.`,
	SilenceUsage: true,
}

var provide = sync.OnceValue(func() service.ExchangeServiceInterface {
	cfg := config.Load()
	logger := app.NewLogger(&cfg.Logging)
	svc, _ := app.NewExchangeService(cfg, nil, logger)
	return svc
})

func init() {
	rootCmd.AddCommand(cli.QuoteCmd(provide))
	rootCmd.AddCommand(cli.LinkCmd(provide))
	rootCmd.AddCommand(cli.ShellCmd(provide))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
