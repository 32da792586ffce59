package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/jonathan/dev-portfolio/internal/github"
)

const maxDescriptionWidth = 60

var (
	reposRecent bool
	reposJSON   bool
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List the account's non-archived repositories",
	Long:  "List the public, non-archived repositories of the configured GitHub account, newest first.",
	Args:  cobra.NoArgs,
	RunE:  runRepos,
}

func init() {
	reposCmd.Flags().BoolVar(&reposRecent, "recent", false, "Only show the configured number of most recent repositories")
	reposCmd.Flags().BoolVar(&reposJSON, "json", false, "Print JSON instead of a table")
	rootCmd.AddCommand(reposCmd)
}

func runRepos(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}

	list := a.Catalog().ListRepositories
	if reposRecent {
		list = a.Catalog().ListRecentRepositories
	}
	repos, err := list(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list repositories: %w", err)
	}

	if reposJSON {
		return writeJSON(cmd.OutOrStdout(), repos)
	}
	return writeRepoTable(cmd.OutOrStdout(), repos)
}

// writeRepoTable prints repos as aligned columns. Widths are measured in
// terminal cells so descriptions with CJK text or emoji line up.
func writeRepoTable(w io.Writer, repos []github.Repository) error {
	rows := [][]string{{"NAME", "STARS", "LANGUAGE", "UPDATED", "DESCRIPTION"}}
	for _, r := range repos {
		updated := "-"
		if !r.UpdatedAt.IsZero() {
			updated = r.UpdatedAt.Format("2006-01-02")
		}
		lang := r.Language
		if lang == "" {
			lang = "-"
		}
		desc := strings.Join(strings.Fields(r.Description), " ")
		rows = append(rows, []string{
			r.Name,
			strconv.Itoa(r.Stars),
			lang,
			updated,
			runewidth.Truncate(desc, maxDescriptionWidth, "…"),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}

	if len(repos) == 0 {
		_, err := fmt.Fprintln(w, "(no repositories)")
		return err
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
