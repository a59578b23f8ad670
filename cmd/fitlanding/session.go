package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/fitlanding/internal/config"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored quiz sessions",
	Long:  `List, inspect, and remove quiz sessions kept in the configured store (file or redis).`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := sessionBackend(cmd)
		if err != nil {
			return err
		}
		defer b.close()

		sessions, err := b.sessions.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No stored sessions found.")
			return nil
		}
		fmt.Fprintln(out, "Quiz Sessions:")
		for _, s := range sessions {
			fmt.Fprintln(out, "- "+s)
		}
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Print the state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := sessionBackend(cmd)
		if err != nil {
			return err
		}
		defer b.close()

		state, err := b.sessions.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load session '%s': %w", args[0], err)
		}
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return fmt.Errorf("requires at least 1 session id or --all")
		}

		b, err := sessionBackend(cmd)
		if err != nil {
			return err
		}
		defer b.close()

		if all {
			if args, err = b.sessions.List(cmd.Context()); err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, id := range args {
			if err := b.sessions.Delete(cmd.Context(), id); err != nil {
				fmt.Fprintf(out, "Error removing '%s': %v\n", id, err)
				failed++
				continue
			}
			fmt.Fprintf(out, "Removed session '%s'\n", id)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d sessions could not be removed", failed, len(args))
		}
		return nil
	},
}

var sessionPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove sessions idle for longer than the session TTL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		maxAge := cfg.Store.SessionTTL
		if cmd.Flags().Changed("older-than") {
			maxAge, _ = cmd.Flags().GetDuration("older-than")
		}
		if maxAge <= 0 {
			return fmt.Errorf("nothing to prune without a positive --older-than or store.session_ttl")
		}

		b, err := openBackend(cfg, logger, "")
		if err != nil {
			return err
		}
		defer b.close()

		removed, err := b.sessions.Prune(cmd.Context(), maxAge)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d session(s) idle for more than %s\n", removed, maxAge)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
	sessionCmd.AddCommand(sessionPruneCmd)
	sessionPruneCmd.Flags().Duration("older-than", 0, "Maximum idle time (defaults to store.session_ttl)")
	sessionRmCmd.Flags().Bool("all", false, "Remove every stored session")
}

func sessionBackend(cmd *cobra.Command) (*backend, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Store.Backend == config.StoreMemory {
		logger.Warn("the memory store starts empty on every run, set store.backend to file or redis")
	}
	return openBackend(cfg, logger, "")
}
