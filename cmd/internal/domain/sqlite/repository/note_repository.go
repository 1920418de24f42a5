package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ivchonotes/cmd/internal/domain/entity"
	"ivchonotes/cmd/internal/utils"
)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

func (n *DefaultNoteRepository) FindRange(fromDay, toDay string) ([]*entity.DailyNote, error) {
	var notes []*entity.DailyNote
	err := n.db.
		Where("day_date >= ?", fromDay).
		Where("day_date <= ?", toDay).
		Order("day_date asc").
		Find(&notes).Error
	return notes, err
}

func (n *DefaultNoteRepository) FindByDay(day string) (*entity.DailyNote, error) {
	var note entity.DailyNote
	err := n.db.First(&note, "day_date = ?", day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Upsert inserts or overwrites the note keyed by day_date and returns the
// stored row, so callers see backend-assigned timestamps rather than their
// own submission.
func (n *DefaultNoteRepository) Upsert(note *entity.DailyNote) (*entity.DailyNote, error) {
	note.UpdatedAt = utils.NowUTC()

	err := n.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"message", "updated_at"}),
	}).Create(note).Error
	if err != nil {
		return nil, err
	}

	var stored entity.DailyNote
	err = n.db.First(&stored, "day_date = ?", note.DayDate).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}
