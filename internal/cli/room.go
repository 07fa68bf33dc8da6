package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room management commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new room",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name}
			if cfg.PlayerID != "" {
				req["playerId"] = cfg.PlayerID
			}

			var result JoinResult

			if err := client.Post("/api/create-room", req, &result); err != nil {
				return err
			}

			// Persist the minted id so later commands act as this player
			if result.PlayerID != "" && result.PlayerID != cfg.PlayerID {
				if err := cfg.SavePlayerID(result.PlayerID); err != nil {
					return err
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get room state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result RoomState

			path := fmt.Sprintf("/api/get-room?roomCode=%s", url.QueryEscape(code))
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"roomCode": args[0],
				"name":     name,
			}
			if cfg.PlayerID != "" {
				req["playerId"] = cfg.PlayerID
			}

			var result JoinResult

			if err := client.Post("/api/join-room", req, &result); err != nil {
				return err
			}

			if result.PlayerID != "" && result.PlayerID != cfg.PlayerID {
				if err := cfg.SavePlayerID(result.PlayerID); err != nil {
					return err
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
