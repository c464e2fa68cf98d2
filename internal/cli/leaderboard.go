package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var game string

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top scores, optionally for one game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LeaderboardResult
			if err := client.Get(cmd.Context(), leaderboardPath(game), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&game, "game", "", "Restrict to one game")

	return cmd
}

func leaderboardPath(game string) string {
	if game == "" {
		return "/leaderboard"
	}
	return "/leaderboard?" + url.Values{"game": {game}}.Encode()
}
