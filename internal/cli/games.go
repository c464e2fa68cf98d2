package cli

import (
	"github.com/spf13/cobra"
)

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List the game catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GamesResult

			if err := client.Get(cmd.Context(), "/games", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
