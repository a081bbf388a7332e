package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"memorymatch/internal/api/request"
	"memorymatch/internal/api/response"
)

func newProgressCmd() *cobra.Command {
	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Fetch and save in-flight game progress",
	}

	progressCmd.AddCommand(newProgressGetCmd())
	progressCmd.AddCommand(newProgressSaveCmd())

	return progressCmd
}

func newProgressGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player-id> <game-type>",
		Short: "Fetch saved progress for a player and game type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			query.Set("player_id", args[0])
			query.Set("game_type", args[1])

			var result response.Progress
			if err := client.Get("/api/v1/game-progress/get_progress?"+query.Encode(), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newProgressSaveCmd() *cobra.Command {
	var (
		level   int
		score   int
		cards   []string
		flipped []string
		matched []string
	)

	cmd := &cobra.Command{
		Use:   "save <player-id> <game-type>",
		Short: "Save progress; omitted flags leave existing fields unchanged",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := request.SaveProgressRequest{
				PlayerID: args[0],
				GameType: args[1],
			}
			if cmd.Flags().Changed("level") {
				body.CurrentLevel = &level
			}
			if cmd.Flags().Changed("score") {
				body.Score = &score
			}
			if cmd.Flags().Changed("cards") {
				body.CardImages = cards
			}
			if cmd.Flags().Changed("flipped") {
				body.FlippedCards = flipped
			}
			if cmd.Flags().Changed("matched") {
				body.MatchedCards = matched
			}

			var result response.Progress
			if err := client.Post("/api/v1/game-progress/save_progress", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&level, "level", 0, "Current level")
	cmd.Flags().IntVar(&score, "score", 0, "Current score")
	cmd.Flags().StringSliceVar(&cards, "cards", nil, "Full deck layout, ordered")
	cmd.Flags().StringSliceVar(&flipped, "flipped", nil, "Currently-flipped cards")
	cmd.Flags().StringSliceVar(&matched, "matched", nil, "Already-matched cards")

	return cmd
}

// parseScore parses a non-negative score argument.
func parseScore(s string) (int, error) {
	score, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q: %w", s, err)
	}
	return score, nil
}
