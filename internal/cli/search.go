package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gn1blog/internal/blog"
	"github.com/spf13/cobra"
)

func newSearchCommand(a *app) *cobra.Command {
	var (
		params       blog.SearchParams
		allLanguages bool
		asJSON       bool
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "List posts matching the given filters, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if params.Locale != "" && !a.cfg.IsSupported(params.Locale) {
				return fmt.Errorf("unsupported locale %q", params.Locale)
			}

			if allLanguages {
				result := a.blog.SearchCrossLanguage(params)
				if asJSON {
					return writeJSON(out, result)
				}
				for _, code := range a.cfg.SupportedLocales {
					fmt.Fprintf(out, "[%s] %d\n", code, result.TotalByLanguage[code])
				}
				return printPosts(out, result.Posts)
			}

			if params.Locale == "" {
				params.Locale = a.cfg.DefaultLocale
			}
			posts := a.blog.Search(params)
			if asJSON {
				return writeJSON(out, posts)
			}
			return printPosts(out, posts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&params.Locale, "locale", "l", "", "locale to search (default is the configured default locale)")
	flags.StringVarP(&params.Category, "category", "c", "", "category name or slug")
	flags.StringVarP(&params.Author, "author", "a", "", "author name, matched by containment")
	flags.StringSliceVarP(&params.Tags, "tag", "t", nil, "tag to match, repeatable")
	flags.StringVar(&params.DateFrom, "from", "", "earliest post date, inclusive")
	flags.StringVar(&params.DateTo, "to", "", "latest post date, inclusive")
	flags.BoolVar(&params.IncludeUnpublished, "drafts", false, "include unpublished posts")
	flags.BoolVar(&params.CrossLanguage, "fallback", false, "use fallback locales when the locale has no posts")
	flags.IntVar(&params.Offset, "offset", 0, "results to skip")
	flags.IntVar(&params.Limit, "limit", 0, "maximum results")
	flags.BoolVar(&allLanguages, "all-languages", false, "search every supported locale")
	flags.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func printPosts(out io.Writer, posts []blog.Post) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tLOCALE\tSLUG\tTITLE")
	for _, p := range posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Date, p.Locale, p.Slug, p.Title)
	}
	return tw.Flush()
}
