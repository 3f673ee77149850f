package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockline/stockline/internal/auth"
	"github.com/stockline/stockline/internal/config"
	"github.com/stockline/stockline/internal/models"
)

func newTokenCmd() *cobra.Command {
	var (
		sess models.Session
		role string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed JWT for a staff user",
		Long:  "Issue an HS256 token signed with JWT_SECRET. Only useful when AUTH_PROVIDER=jwt.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.AuthProvider != config.AuthProviderJWT {
				return fmt.Errorf("%w: AUTH_PROVIDER is %q, tokens are not accepted", models.ErrConfiguration, cfg.AuthProvider)
			}
			if err := models.ValidateTenantID(sess.TenantID); err != nil {
				return err
			}

			sess.Role = models.Role(role)
			token, err := auth.NewJWTResolver(cfg.JWTSecret.Value()).Sign(sess, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&sess.UserID, "user", "", "User id (required)")
	cmd.Flags().StringVar(&sess.TenantID, "tenant", "", "Tenant id (required)")
	cmd.Flags().StringVar(&sess.DisplayName, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", string(models.RoleStaff), "Role: staff, manager, admin or super_admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}
