package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"memorymatch/internal/api/request"
	"memorymatch/internal/api/response"
)

func newPlayerCmd() *cobra.Command {
	playerCmd := &cobra.Command{
		Use:   "player",
		Short: "Manage players",
	}

	playerCmd.AddCommand(newPlayerCreateCmd())
	playerCmd.AddCommand(newPlayerListCmd())
	playerCmd.AddCommand(newPlayerGetCmd())
	playerCmd.AddCommand(newPlayerDeleteCmd())
	playerCmd.AddCommand(newPlayerCheckNameCmd())
	playerCmd.AddCommand(newPlayerStatsCmd())

	return playerCmd
}

func newPlayerCreateCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Register a new player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := request.CreatePlayerRequest{
				Name:     args[0],
				Email:    email,
				Password: password,
			}

			var result response.Player
			if err := client.Post("/api/v1/players", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Player email")
	cmd.Flags().StringVar(&password, "password", "", "Player password")

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Player
			if err := client.Get("/api/v1/players", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a player by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Player
			if err := client.Get("/api/v1/players/"+args[0], &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPlayerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player and everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/players/" + args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("player deleted")
			return nil
		},
	}
}

func newPlayerCheckNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-name <name>",
		Short: "Check whether a player name is taken",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.CheckNameResponse
			if err := client.Get("/api/v1/players/check-name/"+args[0], &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPlayerStatsCmd() *cobra.Command {
	var level, score int

	cmd := &cobra.Command{
		Use:   "stats <id>",
		Short: "Update a player's level and score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body request.UpdateStatsRequest
			if cmd.Flags().Changed("level") {
				body.Level = &level
			}
			if cmd.Flags().Changed("score") {
				body.Score = &score
			}
			if body.Level == nil && body.Score == nil {
				return fmt.Errorf("at least one of --level or --score is required")
			}

			var result response.Player
			if err := client.Patch("/api/v1/players/"+args[0]+"/stats", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&level, "level", 0, "New level")
	cmd.Flags().IntVar(&score, "score", 0, "New score")

	return cmd
}
