package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var name, email, phone string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a player and print the issued player id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" {
				return fmt.Errorf("--name and --email are required")
			}

			req := map[string]string{"name": name, "email": email, "phone": phone}
			var result UserResult

			if err := client.Post(cmd.Context(), "/register", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Player email (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Player phone")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, playerID string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check an email and player id pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || playerID == "" {
				return fmt.Errorf("--email and --player are required")
			}

			req := map[string]string{"email": email, "playerId": playerID}
			var result UserResult

			if err := client.Post(cmd.Context(), "/login", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Registered email (required)")
	cmd.Flags().StringVar(&playerID, "player", "", "Player id (required)")

	return cmd
}
