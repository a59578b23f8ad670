package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Read or change the persisted visitor preferences",
	Long:  `Shows or sets the theme ("dark" or "light") and the cookie-consent flag read at boot.`,
}

var prefsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the effective preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		visitor, _ := cmd.Flags().GetString("visitor")
		b, err := openBackend(cfg, logger, visitor)
		if err != nil {
			return err
		}
		defer b.close()

		prefs := newService(cfg, logger, b, nil).Preferences(cmd.Context())
		data, err := json.MarshalIndent(prefs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode preferences: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a preference (theme, cookie-consent)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		visitor, _ := cmd.Flags().GetString("visitor")
		b, err := openBackend(cfg, logger, visitor)
		if err != nil {
			return err
		}
		defer b.close()

		if err := newService(cfg, logger, b, nil).SetPreference(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.PersistentFlags().String("visitor", defaultVisitor, "Visitor id (redis store only)")
}
