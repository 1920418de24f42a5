package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ivchonotes/cmd/internal/domain/entity"
	"ivchonotes/cmd/internal/utils"
)

type DefaultPatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *DefaultPatientRepository {
	return &DefaultPatientRepository{db: db}
}

// ListByDay returns the day's patients ordered by operation time ascending
// with absent times last, created_at breaking ties.
func (p *DefaultPatientRepository) ListByDay(day string) ([]*entity.Patient, error) {
	var patients []*entity.Patient
	err := p.db.
		Where("day_date = ?", day).
		Order("operation_time IS NULL, operation_time asc, created_at asc").
		Find(&patients).Error
	return patients, err
}

// DaysWithAny returns the day_date of every patient row inside the inclusive
// range. Duplicates are possible; callers de-dupe when building markers.
func (p *DefaultPatientRepository) DaysWithAny(fromDay, toDay string) ([]string, error) {
	var days []string
	err := p.db.Model(&entity.Patient{}).
		Where("day_date >= ?", fromDay).
		Where("day_date <= ?", toDay).
		Pluck("day_date", &days).Error
	return days, err
}

func (p *DefaultPatientRepository) FindByID(id string) (*entity.Patient, error) {
	var patient entity.Patient
	err := p.db.First(&patient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// Insert stores a new row, assigning id and timestamps.
func (p *DefaultPatientRepository) Insert(patient *entity.Patient) error {
	if patient.ID == "" {
		patient.ID = uuid.NewString()
	}
	now := utils.NowUTC()
	patient.CreatedAt = now
	patient.UpdatedAt = now
	return p.db.Create(patient).Error
}

// Update overwrites the editable columns of an existing row and returns the
// stored value. Nil pointer fields are written as NULL, which is why the
// update goes through a column map rather than a struct.
func (p *DefaultPatientRepository) Update(patient *entity.Patient) (*entity.Patient, error) {
	res := p.db.Model(&entity.Patient{}).
		Where("id = ?", patient.ID).
		Updates(map[string]any{
			"name":           patient.Name,
			"phone":          patient.Phone,
			"email":          patient.Email,
			"operation_time": patient.OperationTime,
			"comment":        patient.Comment,
			"updated_at":     utils.NowUTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var stored entity.Patient
	err := p.db.First(&stored, "id = ?", patient.ID).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (p *DefaultPatientRepository) Delete(id string) error {
	return p.db.Delete(&entity.Patient{}, "id = ?", id).Error
}
