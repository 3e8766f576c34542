package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlas-tours/travel-client/pkg/model"
	"github.com/atlas-tours/travel-client/pkg/resource"
)

func init() {
	rootCmd.AddCommand(toursCmd)
	toursCmd.AddCommand(toursListCmd)
	toursCmd.AddCommand(toursAddCmd)
	toursCmd.AddCommand(toursRemoveCmd)
	toursCmd.AddCommand(toursRefreshCmd)

	toursListCmd.Flags().String("category", "", "only tours in this category")
	toursListCmd.Flags().Bool("featured", false, "only featured tours")
	toursListCmd.Flags().String("search", "", "filter by name, location or description")

	toursAddCmd.Flags().String("name", "", "tour name (required)")
	toursAddCmd.Flags().Float64("price", 0, "tour price (required)")
	toursAddCmd.Flags().String("location", "", "tour location")
	toursAddCmd.Flags().String("duration", "", "tour duration, e.g. \"7 days\"")
	toursAddCmd.Flags().String("category", "", "category name")
	toursAddCmd.Flags().Bool("featured", false, "mark the tour featured")
}

var toursCmd = &cobra.Command{
	Use:   "tours",
	Short: "Manage the tour collection",
}

var toursListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached tours",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		var tours []model.Tour
		category, _ := cmd.Flags().GetString("category")
		featured, _ := cmd.Flags().GetBool("featured")
		search, _ := cmd.Flags().GetString("search")
		switch {
		case category != "":
			tours = a.tours.ByCategory(category)
		case featured:
			tours = a.tours.Featured()
		case search != "":
			tours = a.tours.Search(search)
		default:
			tours = a.tours.AllSorted(resource.SortByName, true)
		}

		for _, t := range tours {
			fmt.Printf("%-38s %-28s %8.2f  %s\n", t.ID, t.Name, t.Price, t.Category)
		}
		if a.tours.Degraded() {
			fmt.Println("warning: cache degraded, list may differ from server")
		}
		return nil
	},
}

var toursAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a tour",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		tour := model.Tour{}
		tour.Name, _ = cmd.Flags().GetString("name")
		tour.Price, _ = cmd.Flags().GetFloat64("price")
		tour.Location, _ = cmd.Flags().GetString("location")
		tour.Duration, _ = cmd.Flags().GetString("duration")
		tour.Category, _ = cmd.Flags().GetString("category")
		tour.Featured, _ = cmd.Flags().GetBool("featured")

		created, status, err := a.tours.Add(cmd.Context(), tour)
		if err != nil {
			return err
		}
		fmt.Printf("created tour %s\n", created.ID)
		reportStatus(status)
		return nil
	},
}

var toursRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a tour by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		status, err := a.tours.Remove(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("removed tour %s\n", args[0])
		reportStatus(status)
		return nil
	},
}

var toursRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refetch the authoritative tour list",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.tours.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("refresh failed, cached list unchanged: %w", err)
		}
		fmt.Printf("refreshed, %d tours\n", len(a.tours.All()))
		return nil
	},
}
