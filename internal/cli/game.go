package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game lifecycle commands",
	}

	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameEndCmd())
	cmd.AddCommand(newGameActionCmd())

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []GameInfo

			if err := client.Get("/api/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code> <game-id>",
		Short: "Start a game in a room (host only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PlayerID == "" {
				return fmt.Errorf("no player id: join a room first or pass --player-id")
			}

			req := map[string]string{
				"roomCode": args[0],
				"playerId": cfg.PlayerID,
				"gameId":   args[1],
			}

			var result RoomState

			if err := client.Post("/api/start-game", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <code>",
		Short: "End the current game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PlayerID == "" {
				return fmt.Errorf("no player id: join a room first or pass --player-id")
			}

			req := map[string]string{
				"roomCode": args[0],
				"playerId": cfg.PlayerID,
			}

			var result RoomState

			if err := client.Post("/api/end-game", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameActionCmd() *cobra.Command {
	var payload string

	cmd := &cobra.Command{
		Use:   "action <code> <type>",
		Short: "Submit a game action",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PlayerID == "" {
				return fmt.Errorf("no player id: join a room first or pass --player-id")
			}

			req := map[string]any{
				"roomCode": args[0],
				"playerId": cfg.PlayerID,
				"type":     args[1],
			}
			if payload != "" {
				if !json.Valid([]byte(payload)) {
					return fmt.Errorf("--payload must be valid JSON")
				}
				req["payload"] = json.RawMessage(payload)
			}

			var result RoomState

			if err := client.Post("/api/action", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&payload, "payload", "", "Action payload as a JSON document")

	return cmd
}
