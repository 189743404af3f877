package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"smsgate/internal/di"
	"smsgate/internal/poller"
	"smsgate/internal/structures"
)

var (
	configPath string
	debugMode  bool
)

func cliFlags() *structures.CliFlags {
	return &structures.CliFlags{
		ConfigPath: configPath,
		DebugMode:  debugMode,
	}
}

var rootCmd = &cobra.Command{
	Use:   "smsgate",
	Short: "SMS poller for Netgear LTE modems",
	Long: `smsgate polls a Netgear LTE modem for incoming SMS messages, keeps
monthly-rotated JSON archives and hands newly seen messages to a wrapper
script via exit codes (0 = no new SMS, 1 = error, 2 = new SMS, 130 = interrupted).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Secrets such as NETGEAR_ADMIN_PASSWORD may live in a .env file.
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Poll for new SMS once (standard mode, called by timer)",
	Run: func(cmd *cobra.Command, args []string) {
		cycle, err := di.InitCycle(cliFlags())
		if err != nil {
			fmt.Fprintf(os.Stderr, "init failed: %s\n", err)
			os.Exit(poller.OutcomeError.ExitCode())
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		os.Exit(cycle.Run(ctx).ExitCode())
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display current poller state",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := di.InitStateStore(cliFlags())
		if err != nil {
			return err
		}
		state := store.Load()

		fmt.Println("smsgate Poller Status")
		fmt.Println(strings.Repeat("=", 40))
		fmt.Printf("Last Processed SMS ID: %d\n", state.LastProcessedID)
		fmt.Printf("Max SMS ID Seen: %d\n", state.MaxIDSeen)
		fmt.Printf("Total SMS Received: %d\n", state.TotalReceived)
		fmt.Printf("Hashes Tracked: %d\n", len(state.ProcessedHashes))
		fmt.Printf("Last Check: %s\n", formatUnixSeconds(state.LastCheck))
		fmt.Printf("Last SMS: %s\n", formatUnixSeconds(state.LastSMSTimestamp))

		if state.LatestSMS.Number != "" || state.LatestSMS.Content != "" {
			fmt.Println("\nLatest SMS:")
			fmt.Printf("  From: %s\n", state.LatestSMS.Number)
			fmt.Printf("  Time: %s\n", state.LatestSMS.Time)
			fmt.Printf("  Text: %s\n", state.LatestSMS.Content)
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset poller state (emergency use)",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := di.InitStateStore(cliFlags())
		if err != nil {
			return err
		}
		if err := store.Reset(); err != nil {
			return fmt.Errorf("failed to reset state: %w", err)
		}
		fmt.Println("State reset: last_processed_sms_id=0")
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all SMS in modem inbox (debug)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := di.InitTransport(cliFlags())
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		msgs, err := client.FetchMessages(ctx)
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			fmt.Println("No SMS in modem inbox")
			return nil
		}

		fmt.Printf("\nSMS Inbox (%d messages):\n", len(msgs))
		fmt.Println(strings.Repeat("=", 60))
		for _, msg := range msgs {
			fmt.Printf("ID: %d\n", msg.ID)
			fmt.Printf("From: %s\n", msg.Number)
			fmt.Printf("Time: %s\n", msg.Time)
			if msg.Read {
				fmt.Println("Read: Yes")
			} else {
				fmt.Println("Read: No")
			}
			fmt.Printf("Text: %s\n", msg.Content)
			fmt.Println(strings.Repeat("-", 60))
		}
		return nil
	},
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run continuously with scheduler, health and metrics endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := di.InitApp(cliFlags())
		return err
	},
}

func formatUnixSeconds(ts float64) string {
	if ts <= 0 {
		return "Never"
	}
	return time.Unix(int64(ts), 0).Format("2006-01-02 15:04:05")
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "/etc/smsgate/config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "log to stdout as well")

	rootCmd.AddCommand(checkCmd, statusCmd, resetCmd, listCmd, daemonCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
