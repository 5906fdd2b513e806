package handler

import (
	"github.com/gn1blog/internal/service"
	"github.com/rs/zerolog"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	blog           *service.BlogService
	reports        *service.ReportService
	adminTokenHash string
	logger         zerolog.Logger
}

// NewAPI constructs a handler set with shared services. reports may be nil
// when no database is configured; the snapshot endpoints then answer 503.
func NewAPI(blog *service.BlogService, reports *service.ReportService, adminTokenHash string, logger zerolog.Logger) *API {
	return &API{
		blog:           blog,
		reports:        reports,
		adminTokenHash: adminTokenHash,
		logger:         logger.With().Str("component", "handler").Logger(),
	}
}
