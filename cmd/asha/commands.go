package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/graminseva/asha/internal/storage"
)

// --- call ---

var callCmd = &cobra.Command{
	Use:   "call <number> [number...]",
	Short: "Place outbound announcement calls",
	Long: `Place outbound announcement calls to one or more phone numbers.

Examples:
  asha call +919876543210
  asha call --message "Health camp on Sunday at the panchayat office" +919876543210 +919876543211`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message, _ := cmd.Flags().GetString("message")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(4)
		for _, number := range args {
			number := number
			g.Go(func() error {
				body := map[string]string{"phone": number}
				if message != "" {
					body["message"] = message
				}

				resp, err := client.post(ctx, "/calls/initiate", body)
				if err != nil {
					return err
				}

				var result struct {
					SID       string `json:"sid"`
					Status    string `json:"status"`
					Simulated bool   `json:"simulated"`
				}
				if err := decodeJSON(resp, &result); err != nil {
					printError("Call to %s failed: %v", number, err)
					return err
				}

				if result.Simulated {
					printSuccess("Simulated call to %s (%s)", number, result.SID)
				} else {
					printSuccess("Calling %s: %s (%s)", number, result.Status, result.SID)
				}
				return nil
			})
		}
		return g.Wait()
	},
}

func init() {
	callCmd.Flags().String("message", "", "announcement to speak (default: service announcement)")
}

// --- stats ---

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/stats")
		if err != nil {
			return err
		}

		var stats storage.Stats
		if err := decodeJSON(resp, &stats); err != nil {
			return err
		}

		printStatus("Total calls", "%d", stats.TotalCalls)
		printStatus("Critical calls", "%d", stats.CriticalCalls)
		printStatus("Success rate", "%.0f%%", stats.SuccessRate)
		printStatus("Unique callers", "%d", stats.UniqueCallers)
		printStatus("Avg duration", "%.0fs (estimated)", stats.AvgDurationSeconds)

		if len(stats.TopTopics) > 0 {
			fmt.Println()
			for _, q := range stats.TopTopics {
				fmt.Printf("  %3d  %s\n", q.Count, q.Topic)
			}
		}
		return nil
	},
}

// --- clear ---

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all call and referral history",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			printWarning("This will delete ALL call history. Use --confirm to proceed.")
			return nil
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete(cmd.Context(), "/calls")
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			return fmt.Errorf("server returned %d", resp.StatusCode)
		}

		printSuccess("Call history cleared")
		return nil
	},
}

func init() {
	clearCmd.Flags().Bool("confirm", false, "confirm deletion")
}
