package service

import (
	"errors"
	"strings"

	"github.com/gn1blog/internal/blog"
	"github.com/gn1blog/internal/db"
	"gorm.io/gorm"
)

var ErrSnapshotNotFound = errors.New("stats snapshot not found")

// ReportService persists point-in-time content statistics.
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a ReportService instance.
func NewReportService(gdb *gorm.DB) *ReportService {
	return &ReportService{db: gdb}
}

// Record stores the given statistics as a new snapshot.
func (s *ReportService) Record(source string, stats blog.Stats, translations blog.TranslationStats) (*db.StatsSnapshot, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		source = "manual"
	}
	snapshot := &db.StatsSnapshot{
		Source:              source,
		TotalPosts:          stats.TotalPosts,
		TotalCategories:     stats.TotalCategories,
		TotalAuthors:        stats.TotalAuthors,
		FullyTranslated:     translations.FullyTranslated,
		PartiallyTranslated: translations.PartiallyTranslated,
		Untranslated:        translations.Untranslated,
		LastUpdated:         stats.LastUpdated,
		PostsPerLocale:      stats.PostsPerLocale,
		Completeness:        translations.Completeness,
	}
	if err := s.db.Create(snapshot).Error; err != nil {
		return nil, err
	}
	return snapshot, nil
}

// List returns the most recent snapshots first. limit <= 0 means 20.
func (s *ReportService) List(limit int) ([]db.StatsSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	var snapshots []db.StatsSnapshot
	if err := s.db.Order("created_at desc").Order("id desc").Limit(limit).Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

// Latest returns the newest snapshot.
func (s *ReportService) Latest() (*db.StatsSnapshot, error) {
	var snapshot db.StatsSnapshot
	err := s.db.Order("created_at desc").Order("id desc").First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return &snapshot, nil
}
