package cmd

import (
	"fmt"

	"github.com/SAP-F-2025/readiness-assessment/internal/config"
	"github.com/SAP-F-2025/readiness-assessment/internal/repositories"
	"github.com/SAP-F-2025/readiness-assessment/internal/utils"
	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove stored sessions and hand-offs",
	Long: "With postgres storage, deletes expired rows. With redis storage, expired keys are already gone; " +
		"--all deletes every session and hand-off key.",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger := utils.NewLogger(cfg.Environment, cmd.ErrOrStderr())

		storage, err := openStorage(cmd.Context(), cfg, logger.Slog())
		if err != nil {
			return err
		}
		defer storage.close()

		switch {
		case storage.blobs != nil:
			purged, err := storage.blobs.PurgeExpired(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired blobs\n", purged)
		case storage.redis != nil && all:
			total := 0
			for _, pattern := range []string{repositories.SessionKey("*"), repositories.HandoffKey("*")} {
				deleted, err := storage.redis.DeletePattern(cmd.Context(), pattern)
				if err != nil {
					return err
				}
				total += deleted
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d keys\n", total)
		case storage.redis != nil:
			fmt.Fprintln(cmd.OutOrStdout(), "redis expires keys on its own; pass --all to delete every key")
		default:
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to purge for in-memory storage")
		}
		return nil
	},
}

func init() {
	purgeCmd.Flags().Bool("all", false, "Delete every session and hand-off key (redis only)")
}
