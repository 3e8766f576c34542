package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesAddCmd)
	categoriesCmd.AddCommand(categoriesRemoveCmd)
	categoriesCmd.AddCommand(categoriesRenameCmd)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage the category collection",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.categories.Refresh(cmd.Context()); err != nil {
			fmt.Println("warning: backend unreachable, showing last known categories")
		}
		for _, name := range a.categories.All() {
			fmt.Println(name)
		}
		return nil
	},
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		status, err := a.categories.Add(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("created category %q\n", args[0])
		reportStatus(status)
		return nil
	},
}

var categoriesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a category by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		status, err := a.categories.Remove(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("removed category %q\n", args[0])
		reportStatus(status)
		return nil
	},
}

var categoriesRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a category (delete+create; tours keep the old name)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		status, err := a.categories.Rename(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("renamed category %q to %q\n", args[0], args[1])
		reportStatus(status)
		return nil
	},
}
