// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	pgstore "github.com/taibuivan/folio/internal/platform/postgres"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/internal/users/role"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Manage role assignments",
}

// rolesGrantCmd bootstraps the first admin, who has nobody to grant them a role over HTTP.
var rolesGrantCmd = &cobra.Command{
	Use:     "grant",
	Short:   "Grant a role to an existing account",
	Example: `  folio roles grant --email owner@example.com --role admin`,
	Args:    cobra.NoArgs,
	RunE:    runGrant,
}

func init() {
	rolesGrantCmd.Flags().String("email", "", "email of the account")
	rolesGrantCmd.Flags().String("role", string(sec.RoleAdmin), "role to grant (admin or editor)")
	_ = rolesGrantCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(rolesCmd)
	rolesCmd.AddCommand(rolesGrantCmd)
}

func runGrant(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	roleName, _ := cmd.Flags().GetString("role")

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	pool, err := pgstore.NewPool(cmd.Context(), cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	service := role.NewService(role.NewPostgresRepository(pool), auth.NewUserRepository(pool), log)

	assignment, err := service.Grant(cmd.Context(), email, sec.UserRole(roleName))
	if err != nil {
		return fmt.Errorf("grant %s to %s: %w", roleName, email, err)
	}

	log.Info("role_granted_from_cli",
		slog.String("user_id", assignment.UserID),
		slog.String("role", assignment.Role.String()),
	)
	cmd.Printf("granted %s to %s\n", assignment.Role, email)
	return nil
}
