package model

import "time"

// Run is one recorded research run.
type Run struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	RunID       string `gorm:"size:36;uniqueIndex;not null"`
	Topic       string `gorm:"size:512;not null;index"`
	FromDate    string `gorm:"size:10;not null"`
	ToDate      string `gorm:"size:10;not null"`
	Mode        string `gorm:"size:16;not null"`
	Depth       string `gorm:"size:16;not null"`
	RedditCount int    `gorm:"not null;default:0"`
	XCount      int    `gorm:"not null;default:0"`
	FromCache   bool   `gorm:"not null;default:false"`
	DurationMS  int64  `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

func (Run) TableName() string { return "runs" }
