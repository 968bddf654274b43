package places

import (
	"fmt"

	"github.com/spf13/cobra"

	"placetrack/cmd/cli/client"
	"placetrack/cmd/cli/output"
)

// placeRow is the list response shape the CLI cares about.
type placeRow struct {
	Name              string  `json:"name"`
	Slug              string  `json:"slug"`
	RecordCount       int     `json:"recordCount"`
	TotalMoneyGiven   float64 `json:"totalMoneyGiven"`
	TotalMoneyUsed    float64 `json:"totalMoneyUsed"`
	TotalPowerUnits   float64 `json:"totalPowerUnits"`
	Balance           float64 `json:"balance"`
	ProfitLossPercent float64 `json:"profitLossPercent"`
}

// Init registers the places command tree on the root command.
func Init(rootCmd *cobra.Command) {
	placesCmd := &cobra.Command{
		Use:   "places",
		Short: "Manage places",
	}

	placesCmd.AddCommand(
		listCmd(),
		createCmd(),
		showCmd(),
		deleteCmd(),
	)

	rootCmd.AddCommand(placesCmd)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List places with their aggregated stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out struct {
				Places []placeRow `json:"places"`
			}
			if err := client.Authed("GET", "/api/places", nil, &out); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(out.Places))
			for _, p := range out.Places {
				rows = append(rows, []interface{}{
					p.Name, p.Slug, p.RecordCount,
					fmt.Sprintf("%.2f", p.TotalMoneyGiven),
					fmt.Sprintf("%.2f", p.TotalMoneyUsed),
					fmt.Sprintf("%.2f", p.TotalPowerUnits),
					fmt.Sprintf("%.2f", p.Balance),
					fmt.Sprintf("%.1f%%", p.ProfitLossPercent),
				})
			}
			output.RenderTable(
				[]string{"Name", "Slug", "Records", "Given", "Used", "Power", "Balance", "P/L"},
				rows,
			)
			return nil
		},
	}
}

func createCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a place",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			var out struct {
				Place struct {
					Name string `json:"name"`
					Slug string `json:"slug"`
				} `json:"place"`
			}
			if err := client.Authed("POST", "/api/places", map[string]string{"name": name}, &out); err != nil {
				return err
			}

			fmt.Printf("Created place %q (slug: %s)\n", out.Place.Name, out.Place.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Place name")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Show a place and its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out struct {
				Place   placeRow `json:"place"`
				Records []struct {
					ID         string  `json:"id"`
					Date       string  `json:"date"`
					MoneyGiven float64 `json:"moneyGiven"`
					MoneyUsed  float64 `json:"moneyUsed"`
					PowerUnits float64 `json:"powerUnits"`
				} `json:"records"`
			}
			if err := client.Authed("GET", "/api/places/"+args[0], nil, &out); err != nil {
				return err
			}

			fmt.Printf("%s (%s): %d records, balance %.2f (%.1f%%)\n",
				out.Place.Name, out.Place.Slug, out.Place.RecordCount, out.Place.Balance, out.Place.ProfitLossPercent)

			rows := make([][]interface{}, 0, len(out.Records))
			for _, r := range out.Records {
				rows = append(rows, []interface{}{
					r.ID, r.Date,
					fmt.Sprintf("%.2f", r.MoneyGiven),
					fmt.Sprintf("%.2f", r.MoneyUsed),
					fmt.Sprintf("%.2f", r.PowerUnits),
				})
			}
			output.RenderTable([]string{"ID", "Date", "Given", "Used", "Power"}, rows)
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a place and all its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Authed("DELETE", "/api/places/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Printf("Deleted place %s\n", args[0])
			return nil
		},
	}
}
