package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score commands",
	}

	cmd.AddCommand(newScoreSubmitCmd())

	return cmd
}

// scoreRequest is the POST /scores body.
type scoreRequest struct {
	UserID       string `json:"userId"`
	Game         string `json:"game"`
	Score        int64  `json:"score"`
	SubmissionID string `json:"submissionId,omitempty"`
}

func newScoreSubmitCmd() *cobra.Command {
	var req scoreRequest

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a completed-game score",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.UserID == "" || req.Game == "" {
				return fmt.Errorf("--player and --game are required")
			}

			var result ScoreResult
			if err := client.Post(cmd.Context(), "/scores", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.UserID, "player", "", "Player id (required)")
	cmd.Flags().StringVar(&req.Game, "game", "", "Game name (required)")
	cmd.Flags().Int64Var(&req.Score, "score", 0, "Score, a non-negative integer")
	cmd.Flags().StringVar(&req.SubmissionID, "submission-id", "", "Idempotency key; resubmitting it records nothing")

	return cmd
}
