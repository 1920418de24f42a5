package entity

// DailyNote holds the single free-text note for one calendar day.
// DayDate is a "YYYY-MM-DD" string and acts as the unique key for upserts.
type DailyNote struct {
	DayDate   string `gorm:"primaryKey;column:day_date"`
	Message   string `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null"`
}

func (DailyNote) TableName() string {
	return "daily_notes"
}
