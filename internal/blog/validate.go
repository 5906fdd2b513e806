package blog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gn1blog/internal/config"
	"github.com/gn1blog/internal/locale"
	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidationResult separates problems that make a post unusable (Errors)
// from ones that only degrade it (Warnings).
type ValidationResult struct {
	IsValid             bool     `json:"isValid"`
	Errors              []string `json:"errors"`
	Warnings            []string `json:"warnings"`
	Locale              string   `json:"locale"`
	MissingTranslations []string `json:"missingTranslations"`
}

// requiredFields carries the checks whose failure is an error.
type requiredFields struct {
	Title string `validate:"required"`
	Slug  string `validate:"required,postslug"`
	Date  string `validate:"required,postdate"`
}

func newValidator(cfg config.BlogConfig) *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("postslug", func(fl validator.FieldLevel) bool {
		slug := fl.Field().String()
		return slugPattern.MatchString(slug) && slug != cfg.FallbackSlug
	})
	_ = v.RegisterValidation("postdate", func(fl validator.FieldLevel) bool {
		return IsValidDate(fl.Field().String())
	})
	return v
}

// Validate checks a post against the content rules.
func (e *Engine) Validate(post Post) ValidationResult {
	result := ValidationResult{
		Errors:              []string{},
		Warnings:            []string{},
		Locale:              post.Locale,
		MissingTranslations: []string{},
	}

	fields := requiredFields{
		Title: strings.TrimSpace(post.Title),
		Slug:  post.Slug,
		Date:  post.Date,
	}
	if err := e.validate.Struct(fields); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			result.Errors = append(result.Errors, err.Error())
		}
		for _, fe := range fieldErrs {
			result.Errors = append(result.Errors, describeFieldError(fe))
		}
	}

	if len(post.Title) > e.cfg.MaxTitleLength {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("title is longer than %d characters", e.cfg.MaxTitleLength))
	}

	description := strings.TrimSpace(post.Description)
	switch {
	case description == "":
		result.Warnings = append(result.Warnings, "description is missing")
	case len(post.Description) > e.cfg.MaxDescriptionLength:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("description is longer than %d characters", e.cfg.MaxDescriptionLength))
	}

	if strings.TrimSpace(post.Author) == "" {
		result.Warnings = append(result.Warnings, "author is missing")
	}

	categoryName := strings.TrimSpace(post.Category)
	if len(categoryName) < e.cfg.MinCategoryLength || categoryName == e.cfg.FallbackCategory {
		result.Warnings = append(result.Warnings, "category is missing or invalid")
	}

	if !locale.IsValid(post.Locale) || !e.cfg.IsSupported(post.Locale) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("locale %q is not supported", post.Locale))
	}

	for _, code := range e.cfg.SupportedLocales {
		if code == post.Locale {
			continue
		}
		if _, ok := post.Translations[code]; !ok {
			result.MissingTranslations = append(result.MissingTranslations, code)
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "Title":
		return "title is required"
	case "Slug":
		if fe.Tag() == "required" {
			return "slug is required"
		}
		return "slug must contain only lowercase letters, digits and hyphens"
	case "Date":
		if fe.Tag() == "required" {
			return "date is required"
		}
		return "date is not a valid date"
	default:
		return fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag())
	}
}
