package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/auth"
)

func deleteCmd() *cobra.Command {
	var server string
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <listing-id>",
		Short: "Delete a listing on a running server after interactive confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listingID, err := strconv.Atoi(args[0])
			if err != nil || listingID <= 0 {
				return fmt.Errorf("invalid listing id %q", args[0])
			}
			if !yes && !confirmDeletion(cmd.InOrStdin(), cmd.OutOrStdout(), listingID) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted, nothing was deleted.")
				return nil
			}

			cfg, err := loadConfig("cli")
			if err != nil {
				return err
			}
			if err := cfg.RequireJwtSecret(); err != nil {
				return err
			}
			token, err := auth.GenerateAdminToken("cli", cfg.JwtSecret, time.Minute)
			if err != nil {
				return err
			}
			if server == "" {
				server = "http://localhost:" + cfg.ApiPort
			}
			if err := deleteListing(cmd.Context(), server, token, listingID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Listing %d deleted.\n", listingID)
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "Base URL of the API (default http://localhost:$API_PORT)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// confirmDeletion asks the operator to type the listing id back.
func confirmDeletion(in io.Reader, out io.Writer, listingID int) bool {
	fmt.Fprintf(out, "Deleting listing %d cannot be undone. Type the id to confirm: ", listingID)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.TrimSpace(line) == strconv.Itoa(listingID)
}

func deleteListing(ctx context.Context, server, token string, listingID int) error {
	url := fmt.Sprintf("%s/v1/admin/listings/%d?confirm=true", strings.TrimRight(server, "/"), listingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("listing %d not found", listingID)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("server answered %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
}
