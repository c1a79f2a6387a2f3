package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kafune/rede-guti/internal/registry"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the merged view fresh, printing changes as they land",
	Long: `Polls the server on an interval and prints the collection size after
each successful refresh. Ticks that land while a refresh is still in
flight are skipped. Stops on Ctrl-C, or when the session expires.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := sess.User(); !ok {
			return fmt.Errorf("nenhuma sessão ativa, faça login primeiro")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			lastTotal := -1
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if total := len(engine.Snapshot()); total != lastTotal {
						lastTotal = total
						fmt.Printf("%s  %d cadastros\n", time.Now().Format("15:04:05"), total)
					}
				}
			}
		}()

		poller := registry.NewPoller(engine, watchInterval)
		poller.Run(ctx, func() {
			fmt.Fprintln(os.Stderr, "Sessão expirada, faça login novamente.")
		})
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", registry.PollInterval, "poll interval")
}
