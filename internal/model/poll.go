package model

import "time"

type Poll struct {
	ID        uint   `gorm:"primarykey"`
	Question  string `gorm:"size:500;not null"`
	UserID    uint   `gorm:"not null;index"`
	ShareCode string `gorm:"uniqueIndex;size:20;not null"`
	CreatedAt time.Time

	Options []PollOption `gorm:"constraint:OnDelete:CASCADE"`
	Votes   []Vote       `gorm:"constraint:OnDelete:CASCADE"`
}
