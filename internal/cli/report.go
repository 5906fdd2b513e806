package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func newStatsCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print post counts per locale, category and author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats := a.blog.Statistics()
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, stats)
			}

			fmt.Fprintf(out, "Posts:        %d\n", stats.TotalPosts)
			fmt.Fprintf(out, "Categories:   %d\n", stats.TotalCategories)
			fmt.Fprintf(out, "Authors:      %d\n", stats.TotalAuthors)
			fmt.Fprintf(out, "Last updated: %s\n\n", stats.LastUpdated)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LOCALE\tPOSTS\tCATEGORIES\tAUTHORS")
			for _, code := range a.cfg.SupportedLocales {
				entry := stats.Locales[code]
				if entry == nil {
					fmt.Fprintf(tw, "%s\t0\t0\t0\n", code)
					continue
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", code, entry.Posts, len(entry.Categories), len(entry.Authors))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newTranslationsCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "translations",
		Short: "Print translation progress and the slugs still missing locales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats := a.blog.TranslationStatistics()
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, stats)
			}

			fmt.Fprintf(out, "Fully translated:     %d\n", stats.FullyTranslated)
			fmt.Fprintf(out, "Partially translated: %d\n", stats.PartiallyTranslated)
			fmt.Fprintf(out, "Untranslated:         %d\n\n", stats.Untranslated)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LOCALE\tCOMPLETENESS")
			for _, code := range a.cfg.SupportedLocales {
				fmt.Fprintf(tw, "%s\t%.1f%%\n", code, stats.Completeness[code])
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if len(stats.MissingTranslations) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tORIGINAL\tMISSING")
			for _, missing := range stats.MissingTranslations {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", missing.Slug, missing.OriginalLocale, strings.Join(missing.MissingLocales, ","))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
