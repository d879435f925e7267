package model

type PollOption struct {
	ID     uint   `gorm:"primarykey"`
	PollID uint   `gorm:"not null;index"`
	Text   string `gorm:"size:200;not null"`

	Votes []Vote `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE"`
}
