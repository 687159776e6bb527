// Command token mints an access token for local development, signed with the
// server's configured secret.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vinay0094k/myteamda-withroles-mobile/config"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/jwt"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		configPath string
		userID     string
		role       string
		ttl        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed access token for a user.",
		Example: `
token --user 6f1c... --role manager
TIMESHEET_AUTH_JWT_SECRET=... token --user 6f1c... --ttl 1h
`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			switch role {
			case model.RoleAdmin, model.RoleHR, model.RoleManager, model.RoleEmployee:
			default:
				return fmt.Errorf("unknown role %q", role)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if ttl > 0 {
				cfg.Auth.AccessTokenTTL = ttl
			}

			token, err := jwt.NewManager(&cfg.Auth).GenerateAccessToken(userID, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "server config file")
	cmd.Flags().StringVar(&userID, "user", "", "user id the token speaks for")
	cmd.Flags().StringVar(&role, "role", model.RoleEmployee, "admin, hr, manager or employee")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "lifetime (default auth.access_token_ttl)")
	return cmd
}
