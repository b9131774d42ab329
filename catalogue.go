package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/services"
)

func catalogueCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "Print the seeded catalogue with availability, urgency and prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig("cli")
			if err != nil {
				return err
			}
			cat, err := openCatalogue(cmd.Context(), cfg, time.Now)
			if err != nil {
				return err
			}
			return printCatalogue(cmd.Context(), cmd.OutOrStdout(), cat.listingService, models.ParseStatusFilter(status))
		},
	}
	cmd.Flags().StringVar(&status, "status", string(models.StatusAll), "Filter: all, available or sold-out")
	return cmd
}

func printCatalogue(ctx context.Context, out io.Writer, svc services.IListingService, status models.StatusFilter) error {
	views, err := svc.ListListings(ctx, status)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tAVAILABLE\tSOLD %\tURGENCY\tSOLD/MONTH")
	for _, v := range views {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d/%d\t%d%%\t%s\t%.1f\n",
			v.ID,
			v.Title,
			v.FormattedPrice,
			v.Metrics.Availability.Available,
			v.TotalUnits,
			v.Metrics.Availability.PercentageSold,
			v.Metrics.Urgency.Label,
			v.Metrics.Velocity.SoldPerMonth)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d listing(s), filter %s\n", len(views), status)
	return nil
}
