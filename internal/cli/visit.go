package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newVisitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visits",
		Short: "Visit commands",
	}

	cmd.AddCommand(newVisitsCreateCmd())
	cmd.AddCommand(newVisitsListCmd())
	cmd.AddCommand(newVisitsDecideCmd())

	return cmd
}

func newVisitsCreateCmd() *cobra.Command {
	var visitorFID, homeownerFID int64
	var message string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Knock on a homeowner's door",
		RunE: func(cmd *cobra.Command, args []string) error {
			if visitorFID <= 0 || homeownerFID <= 0 {
				return fmt.Errorf("--visitor and --homeowner are required")
			}
			if message == "" {
				return fmt.Errorf("--message is required")
			}

			req := map[string]any{
				"visitor_fid":   visitorFID,
				"homeowner_fid": homeownerFID,
				"message":       message,
			}
			var result Visit

			if err := client.Post("/api/v1/visits", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&visitorFID, "visitor", 0, "Visitor fid (required)")
	cmd.Flags().Int64Var(&homeownerFID, "homeowner", 0, "Homeowner fid (required)")
	cmd.Flags().StringVar(&message, "message", "", "Visit message (required)")
	_ = cmd.MarkFlagRequired("visitor")
	_ = cmd.MarkFlagRequired("homeowner")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func newVisitsListCmd() *cobra.Command {
	var homeownerFID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a homeowner's undecided visits",
		RunE: func(cmd *cobra.Command, args []string) error {
			if homeownerFID <= 0 {
				return fmt.Errorf("--homeowner is required")
			}

			var result VisitList
			path := "/api/v1/visits?homeowner_fid=" + strconv.FormatInt(homeownerFID, 10)

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&homeownerFID, "homeowner", 0, "Homeowner fid (required)")
	_ = cmd.MarkFlagRequired("homeowner")

	return cmd
}

func newVisitsDecideCmd() *cobra.Command {
	var accept, decline bool

	cmd := &cobra.Command{
		Use:   "decide <visit-id>",
		Short: "Decide on a visit (accept or decline)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if accept == decline {
				return fmt.Errorf("exactly one of --accept or --decline is required")
			}

			req := map[string]any{
				"matched": accept,
				"seen":    true,
			}
			var result Visit

			if err := client.Patch("/api/v1/visits/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&accept, "accept", false, "Accept the visitor (TrETH)")
	cmd.Flags().BoolVar(&decline, "decline", false, "Decline the visitor (Trick)")

	return cmd
}
