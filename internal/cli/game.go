package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"memorymatch/internal/api/request"
	"memorymatch/internal/api/response"
)

func newGameCmd() *cobra.Command {
	gameCmd := &cobra.Command{
		Use:   "game",
		Short: "Record and list completed games",
	}

	gameCmd.AddCommand(newGameRecordCmd())
	gameCmd.AddCommand(newGameListCmd())
	gameCmd.AddCommand(newGameDeleteCmd())

	return gameCmd
}

func newGameRecordCmd() *cobra.Command {
	var gameName string

	cmd := &cobra.Command{
		Use:   "record <player-id> <game-type> <score>",
		Short: "Record a completed game result",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := parseScore(args[2])
			if err != nil {
				return err
			}

			body := request.RecordGameRequest{
				PlayerID: args[0],
				GameType: args[1],
				Score:    &score,
				GameName: gameName,
			}

			var result response.Game
			if err := client.Post("/api/v1/games", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameName, "name", "", "Game name (defaults to Memory Match)")

	return cmd
}

func newGameListCmd() *cobra.Command {
	var playerID, gameType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List completed games, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if playerID != "" {
				query.Set("player_id", playerID)
			}
			if gameType != "" {
				query.Set("game_type", gameType)
			}
			path := "/api/v1/games"
			if len(query) > 0 {
				path += "?" + query.Encode()
			}

			var result []response.Game
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Filter by player ID")
	cmd.Flags().StringVar(&gameType, "type", "", "Filter by game type")

	return cmd
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a completed-game record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/games/" + args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("game deleted")
			return nil
		},
	}
}
