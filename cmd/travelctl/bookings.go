package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlas-tours/travel-client/pkg/model"
)

func init() {
	rootCmd.AddCommand(bookingsCmd)
	bookingsCmd.AddCommand(bookingsListCmd)
	bookingsCmd.AddCommand(bookingsStatusCmd)
	bookingsCmd.AddCommand(bookingsRemoveCmd)

	bookingsListCmd.Flags().String("status", "", "only bookings in this status")
	bookingsListCmd.Flags().String("tour", "", "only bookings for this tour id")
}

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Manage the booking collection",
}

var bookingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookings from the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		// Bookings are server-authoritative, so always refetch first.
		if err := a.bookings.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("booking list unavailable: %w", err)
		}

		bookings := a.bookings.All()
		status, _ := cmd.Flags().GetString("status")
		if status != "" {
			bookings = a.bookings.ByStatus(model.BookingStatus(status))
		}
		tourID, _ := cmd.Flags().GetString("tour")
		if tourID != "" {
			bookings = a.bookings.ByTour(tourID)
		}

		for _, b := range bookings {
			fmt.Printf("%-38s %-20s %-24s %-10s %s\n",
				b.ID, b.Contact.FirstName+" "+b.Contact.LastName,
				b.Tour.Name, b.Status, b.DepartureDate)
		}
		return nil
	},
}

var bookingsStatusCmd = &cobra.Command{
	Use:   "set-status <id> <status>",
	Short: "Change a booking status (pending, confirmed, cancelled, completed)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.bookings.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("booking list unavailable: %w", err)
		}

		next := model.BookingStatus(args[1])
		status, err := a.bookings.Update(cmd.Context(), args[0], model.BookingPatch{Status: &next})
		if err != nil {
			return err
		}
		fmt.Printf("booking %s set to %s\n", args[0], next)
		reportStatus(status)
		return nil
	},
}

var bookingsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a booking by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.bookings.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("booking list unavailable: %w", err)
		}
		status, err := a.bookings.Remove(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("removed booking %s\n", args[0])
		reportStatus(status)
		return nil
	},
}
