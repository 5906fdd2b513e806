package db

import "time"

// StatsSnapshot 记录某一时刻内容库的统计结果，用于追踪翻译进度。
type StatsSnapshot struct {
	ID                  uint               `gorm:"primaryKey"`
	Source              string             `gorm:"size:32;index"`
	TotalPosts          int                `gorm:"default:0"`
	TotalCategories     int                `gorm:"default:0"`
	TotalAuthors        int                `gorm:"default:0"`
	FullyTranslated     int                `gorm:"default:0"`
	PartiallyTranslated int                `gorm:"default:0"`
	Untranslated        int                `gorm:"default:0"`
	LastUpdated         string             `gorm:"size:64"`
	PostsPerLocale      map[string]int     `gorm:"serializer:json"`
	Completeness        map[string]float64 `gorm:"serializer:json"`
	CreatedAt           time.Time          `gorm:"index"`
}

// TableName 指定自定义表名。
func (StatsSnapshot) TableName() string {
	return "stats_snapshots"
}
