package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var errValidationFailed = errors.New("validation failed")

const watchDebounce = 300 * time.Millisecond

func newValidateCommand(a *app) *cobra.Command {
	var (
		code  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "validate [slug...]",
		Short: "Check posts for missing fields and other problems",
		Long: `validate checks every post, or only the given slugs, and exits non-zero
when any post has errors. With --watch it re-runs whenever the content
directory changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := a.locales(code)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := a.validate(out, codes, args)
			if !watch {
				if failed {
					return errValidationFailed
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			fmt.Fprintln(out, "watching for changes, press Ctrl+C to stop")
			err = a.loader.Watch(ctx, watchDebounce, func() {
				fmt.Fprintln(out)
				a.validate(out, codes, args)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&code, "locale", "l", "", "only validate this locale")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run when content changes")
	return cmd
}

// validate prints one line per problem and reports whether any post has
// errors.
func (a *app) validate(out io.Writer, codes, slugs []string) bool {
	failed := false
	checked := 0
	for _, code := range codes {
		targets := slugs
		if len(targets) == 0 {
			for _, post := range a.blog.AllPosts(code) {
				targets = append(targets, post.Slug)
			}
		} else {
			targets = existingSlugs(a, targets, code)
		}

		for _, slug := range targets {
			checked++
			result := a.blog.ValidatePostBySlug(slug, code)
			for _, msg := range result.Errors {
				fmt.Fprintf(out, "ERROR %s/%s: %s\n", code, slug, msg)
			}
			for _, msg := range result.Warnings {
				fmt.Fprintf(out, "WARN  %s/%s: %s\n", code, slug, msg)
			}
			if !result.IsValid {
				failed = true
			}
		}
	}
	fmt.Fprintf(out, "%d posts checked\n", checked)
	return failed
}

// existingSlugs drops requested slugs the locale does not have, so asking
// for a post translated to one language only is not an error elsewhere.
func existingSlugs(a *app, slugs []string, code string) []string {
	out := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if a.blog.PostExists(slug, code) {
			out = append(out, slug)
		}
	}
	return out
}
