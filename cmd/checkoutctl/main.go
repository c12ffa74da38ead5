package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
	)

	rootCmd := &cobra.Command{
		Use:           "checkoutctl",
		Short:         "Inspect and drive checkout sessions",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&addr, "addr", envOr("CHECKOUT_ADDR", "http://localhost:8083"), "checkout service base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")

	client := func() *Client { return NewClient(addr, timeout) }

	rootCmd.AddCommand(checkpointCmd(client))
	rootCmd.AddCommand(resumeCmd(client))

	return rootCmd
}

func checkpointCmd(client func() *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Read or clear the checkpoint of a session",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show [session-key]",
		Short: "Show the current checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := client().Get(cmd.Context(), "/api/v1/checkouts/"+args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	})

	history := &cobra.Command{
		Use:   "history [session-key]",
		Short: "Show the checkpoints written for a session, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/checkouts/" + args[0] + "/history"
			if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}
			body, err := client().Get(cmd.Context(), path)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	}
	history.Flags().IntP("limit", "n", 0, "keep only the most recent entries")
	cmd.AddCommand(history)

	cmd.AddCommand(&cobra.Command{
		Use:   "clear [session-key]",
		Short: "Leave the checkout. Refused once an order was initiated.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client().Post(cmd.Context(), "/api/v1/checkouts/"+args[0]+"/back"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func resumeCmd(client func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "resume [session-key]",
		Short: "Resume a checkout from its checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := client().Post(cmd.Context(), "/api/v1/checkouts/"+args[0]+"/resume")
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
