package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersGetCmd())
	cmd.AddCommand(newPlayersUpsertCmd())

	return cmd
}

func newPlayersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerList

			if err := client.Get("/api/v1/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <fid>",
		Short: "Get a player by fid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get("/api/v1/players/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayersUpsertCmd() *cobra.Command {
	var fid int64
	var wallet, name, avatar string

	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Create or update a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fid <= 0 {
				return fmt.Errorf("--fid is required")
			}

			req := map[string]any{
				"fid":            fid,
				"wallet_address": wallet,
				"display_name":   name,
				"avatar_url":     avatar,
			}
			var result Player

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&fid, "fid", 0, "Player fid (required)")
	cmd.Flags().StringVar(&wallet, "wallet", "", "Wallet address")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar URL")
	_ = cmd.MarkFlagRequired("fid")

	return cmd
}
