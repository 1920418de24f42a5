package entity

// Patient is one scheduled appointment on a given day. Many patients may
// share a DayDate. Optional columns are pointers so that an absent value is
// stored as NULL rather than an empty string.
type Patient struct {
	ID            string `gorm:"primaryKey"`
	DayDate       string `gorm:"not null;index;column:day_date"`
	Name          string `gorm:"not null"`
	Phone         string `gorm:"not null"`
	Email         *string
	OperationTime *string `gorm:"column:operation_time"` // "HH:MM:SS"
	Comment       *string
	CreatedAt     int64 `gorm:"not null"`
	UpdatedAt     int64 `gorm:"not null"`
}

func (Patient) TableName() string {
	return "daily_patients"
}
