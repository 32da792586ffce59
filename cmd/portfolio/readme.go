package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var readmeBranch string

var readmeCmd = &cobra.Command{
	Use:   "readme <repository>",
	Short: "Print a repository's README as embeddable HTML",
	Long:  "Fetch the rendered README of a repository and rewrite relative image and link URLs to absolute GitHub URLs.",
	Args:  cobra.ExactArgs(1),
	RunE:  runReadme,
}

func init() {
	readmeCmd.Flags().StringVarP(&readmeBranch, "branch", "b", "", "Branch relative links point at (default: HEAD)")
	rootCmd.AddCommand(readmeCmd)
}

func runReadme(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}

	html, err := a.Catalog().ReadmeHTML(cmd.Context(), args[0], readmeBranch)
	if err != nil {
		return fmt.Errorf("failed to fetch README: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
	return err
}
