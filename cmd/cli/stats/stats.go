package stats

import (
	"fmt"

	"github.com/spf13/cobra"

	"placetrack/cmd/cli/client"
)

// Init registers the stats command on the root command.
func Init(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show aggregated totals across all your places",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out struct {
				PlaceCount        int     `json:"placeCount"`
				RecordCount       int     `json:"recordCount"`
				TotalMoneyGiven   float64 `json:"totalMoneyGiven"`
				TotalMoneyUsed    float64 `json:"totalMoneyUsed"`
				TotalPowerUnits   float64 `json:"totalPowerUnits"`
				Balance           float64 `json:"balance"`
				ProfitLossPercent float64 `json:"profitLossPercent"`
			}
			if err := client.Authed("GET", "/api/stats", nil, &out); err != nil {
				return err
			}

			fmt.Printf("Places:  %d\n", out.PlaceCount)
			fmt.Printf("Records: %d\n", out.RecordCount)
			fmt.Printf("Given:   %.2f\n", out.TotalMoneyGiven)
			fmt.Printf("Used:    %.2f\n", out.TotalMoneyUsed)
			fmt.Printf("Power:   %.2f\n", out.TotalPowerUnits)
			fmt.Printf("Balance: %.2f (%.1f%%)\n", out.Balance, out.ProfitLossPercent)
			return nil
		},
	})
}
