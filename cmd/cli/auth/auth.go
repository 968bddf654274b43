package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"placetrack/cmd/cli/client"
	"placetrack/cmd/cli/config"
)

// Init registers auth-related CLI commands on the root command.
func Init(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd(), logoutCmd())
}

// loginCmd authenticates against the API and stores the JWT token locally.
// With --signup the account is created first.
func loginCmd() *cobra.Command {
	var email string
	var password string
	var signup bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the placetrack API",
		Long:  "Authenticate with the placetrack API and store a JWT token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}

			path := "/api/auth/login"
			if signup {
				path = "/api/auth/signup"
			}

			var out struct {
				Token string `json:"token"`
			}
			if err := client.Do("POST", path, "", map[string]string{"email": email, "password": password}, &out); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}
			if out.Token == "" {
				return fmt.Errorf("authentication succeeded but no token returned")
			}

			if err := config.SaveToken(out.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().BoolVar(&signup, "signup", false, "Create the account before logging in")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearToken(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
