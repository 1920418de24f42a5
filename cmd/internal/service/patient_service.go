package service

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"ivchonotes/cmd/internal/cache"
	"ivchonotes/cmd/internal/domain/entity"
	"ivchonotes/cmd/internal/utils"
	"ivchonotes/cmd/internal/utils/apierror"
)

type PatientRepository interface {
	ListByDay(day string) ([]*entity.Patient, error)
	DaysWithAny(fromDay, toDay string) ([]string, error)
	FindByID(id string) (*entity.Patient, error)
	Insert(patient *entity.Patient) error
	Update(patient *entity.Patient) (*entity.Patient, error)
	Delete(id string) error
}

type PatientCreateRequest struct {
	DayDate       string `json:"day_date" validate:"required,isodate"`
	Name          string `json:"name" validate:"required,min=1,max=120"`
	Phone         string `json:"phone" validate:"required,min=1,max=40"`
	Email         string `json:"email" validate:"omitempty,email"`
	OperationTime string `json:"operation_time" validate:"timeofday"`
	Comment       string `json:"comment" validate:"max=500"`
}

type PatientUpdateRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=120"`
	Phone         string `json:"phone" validate:"required,min=1,max=40"`
	Email         string `json:"email" validate:"omitempty,email"`
	OperationTime string `json:"operation_time" validate:"timeofday"`
	Comment       string `json:"comment" validate:"max=500"`
}

type PatientResponse struct {
	ID            string  `json:"id"`
	DayDate       string  `json:"day_date"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email"`
	OperationTime *string `json:"operation_time"`
	Comment       *string `json:"comment"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// PatientDayResponse is what mutations hand back: the affected row plus the
// re-fetched listing for its day.
type PatientDayResponse struct {
	Patient  *PatientResponse   `json:"patient,omitempty"`
	DayDate  string             `json:"day_date"`
	Patients []*PatientResponse `json:"patients"`
}

type PatientMarkersResponse struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Loading bool     `json:"loading"`
	Days    []string `json:"days_with_patients"`
}

// DefaultPatientService owns the has-content markers for the calendar and
// runs every mutation through the same sequence the pages used: persist,
// re-fetch the day's listing, re-fetch the range markers. An error anywhere
// aborts the rest of the sequence and leaves the caches untouched.
type DefaultPatientService struct {
	PatientRepo PatientRepository
	Validate    *validator.Validate
	Window      cache.Window
	Markers     *cache.DayMap[struct{}]
	Clock       func() time.Time
}

func NewPatientService(patientRepo PatientRepository, validate *validator.Validate, window cache.Window) *DefaultPatientService {
	return &DefaultPatientService{
		PatientRepo: patientRepo,
		Validate:    validate,
		Window:      window,
		Markers:     cache.NewDayMap[struct{}](),
		Clock:       time.Now,
	}
}

// LoadMarkers refreshes the day→has-content mapping for the whole window in
// one atomic swap.
func (s *DefaultPatientService) LoadMarkers() apierror.ErrorResponse {
	from, to := s.Window.Bounds(s.Clock())
	s.Markers.BeginLoad()

	days, err := s.PatientRepo.DaysWithAny(from, to)
	if err != nil {
		s.Markers.EndLoad()
		log.Errorf("failed to load patient markers [%s - %s]: %v", from, to, err)
		return apierror.InternalServerError
	}

	entries := make(map[string]struct{}, len(days))
	for _, day := range days {
		entries[day] = struct{}{}
	}
	s.Markers.ReplaceAll(from, to, entries)
	return nil
}

func (s *DefaultPatientService) GetMarkers() *PatientMarkersResponse {
	from, to := s.Markers.Bounds()
	if from == "" {
		from, to = s.Window.Bounds(s.Clock())
	}

	days := make([]string, 0)
	for day := range s.Markers.Snapshot() {
		days = append(days, day)
	}
	sort.Strings(days)

	return &PatientMarkersResponse{
		From:    from,
		To:      to,
		Loading: s.Markers.Loading(),
		Days:    days,
	}
}

func (s *DefaultPatientService) ListByDay(day string) ([]*PatientResponse, apierror.ErrorResponse) {
	if _, err := utils.ParseDay(day); err != nil {
		return nil, apierror.NewInvalidParamTypeError("day", "YYYY-MM-DD date")
	}

	patients, err := s.PatientRepo.ListByDay(day)
	if err != nil {
		log.Errorf("failed to list patients for %s: %v", day, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*PatientResponse, len(patients))
	for i, p := range patients {
		resp[i] = toPatientResponse(p)
	}
	return resp, nil
}

func (s *DefaultPatientService) Create(req *PatientCreateRequest) (*PatientDayResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	opTime, err := utils.NormalizeTimeOfDay(req.OperationTime)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}

	patient := &entity.Patient{
		DayDate:       req.DayDate,
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         optional(req.Email),
		OperationTime: optional(opTime),
		Comment:       optional(req.Comment),
	}

	if err := s.PatientRepo.Insert(patient); err != nil {
		log.Errorf("failed to create patient on %s: %v", req.DayDate, err)
		return nil, apierror.InternalServerError
	}

	return s.afterMutation(patient.DayDate, toPatientResponse(patient))
}

func (s *DefaultPatientService) Update(id string, req *PatientUpdateRequest) (*PatientDayResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	opTime, err := utils.NormalizeTimeOfDay(req.OperationTime)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}

	stored, err := s.PatientRepo.Update(&entity.Patient{
		ID:            id,
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         optional(req.Email),
		OperationTime: optional(opTime),
		Comment:       optional(req.Comment),
	})
	if err != nil {
		log.Errorf("failed to update patient %s: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if stored == nil {
		return nil, apierror.NotFoundError
	}

	return s.afterMutation(stored.DayDate, toPatientResponse(stored))
}

func (s *DefaultPatientService) Delete(id string) (*PatientDayResponse, apierror.ErrorResponse) {
	patient, err := s.PatientRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch patient %s: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if patient == nil {
		return nil, apierror.NotFoundError
	}

	if err := s.PatientRepo.Delete(id); err != nil {
		log.Errorf("failed to delete patient %s: %v", id, err)
		return nil, apierror.InternalServerError
	}

	return s.afterMutation(patient.DayDate, nil)
}

// afterMutation re-fetches the mutated day's listing and the range markers,
// strictly in that order, so the calendar decoration stays consistent with
// edits made by other sessions.
func (s *DefaultPatientService) afterMutation(day string, mutated *PatientResponse) (*PatientDayResponse, apierror.ErrorResponse) {
	listing, apierr := s.ListByDay(day)
	if apierr != nil {
		return nil, apierr
	}

	if apierr := s.LoadMarkers(); apierr != nil {
		return nil, apierr
	}

	return &PatientDayResponse{
		Patient:  mutated,
		DayDate:  day,
		Patients: listing,
	}, nil
}

// optional maps a sanitized form value to its column: empty means absent.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toPatientResponse(p *entity.Patient) *PatientResponse {
	return &PatientResponse{
		ID:            p.ID,
		DayDate:       p.DayDate,
		Name:          p.Name,
		Phone:         p.Phone,
		Email:         p.Email,
		OperationTime: p.OperationTime,
		Comment:       p.Comment,
		CreatedAt:     utils.FormatEpoch(p.CreatedAt),
		UpdatedAt:     utils.FormatEpoch(p.UpdatedAt),
	}
}
