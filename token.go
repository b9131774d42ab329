package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/auth"
)

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token [subject]",
		Short: "Mint an admin token signed with JWT_SECRET",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig("cli")
			if err != nil {
				return err
			}
			if err := cfg.RequireJwtSecret(); err != nil {
				return err
			}
			subject := "admin"
			if len(args) == 1 {
				subject = args[0]
			}
			token, err := auth.GenerateAdminToken(subject, cfg.JwtSecret, cfg.JwtTTL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
