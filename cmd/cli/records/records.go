package records

import (
	"fmt"

	"github.com/spf13/cobra"

	"placetrack/cmd/cli/client"
)

// Init registers the records command tree on the root command.
func Init(rootCmd *cobra.Command) {
	recordsCmd := &cobra.Command{
		Use:   "records",
		Short: "Manage records",
	}

	recordsCmd.AddCommand(
		addCmd(),
		deleteCmd(),
	)

	rootCmd.AddCommand(recordsCmd)
}

func addCmd() *cobra.Command {
	var (
		placeID string
		date    string
		given   float64
		used    float64
		power   float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record to a place",
		RunE: func(cmd *cobra.Command, args []string) error {
			if placeID == "" {
				return fmt.Errorf("--place is required")
			}
			if date == "" {
				return fmt.Errorf("--date is required")
			}

			payload := map[string]interface{}{
				"placeId":    placeID,
				"date":       date,
				"moneyGiven": given,
				"moneyUsed":  used,
				"powerUnits": power,
			}

			var out struct {
				Record struct {
					ID string `json:"id"`
				} `json:"record"`
			}
			if err := client.Authed("POST", "/api/records", payload, &out); err != nil {
				return err
			}

			fmt.Printf("Added record %s\n", out.Record.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&placeID, "place", "", "Place ID")
	cmd.Flags().StringVar(&date, "date", "", "Record date (e.g. 2025-08-28)")
	cmd.Flags().Float64Var(&given, "given", 0, "Money given")
	cmd.Flags().Float64Var(&used, "used", 0, "Money used")
	cmd.Flags().Float64Var(&power, "power", 0, "Power units")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Authed("DELETE", "/api/records/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Printf("Deleted record %s\n", args[0])
			return nil
		},
	}
}
