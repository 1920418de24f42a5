package service

import (
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"ivchonotes/cmd/internal/cache"
	"ivchonotes/cmd/internal/domain/entity"
	"ivchonotes/cmd/internal/utils"
	"ivchonotes/cmd/internal/utils/apierror"
)

type NoteRepository interface {
	FindRange(fromDay, toDay string) ([]*entity.DailyNote, error)
	FindByDay(day string) (*entity.DailyNote, error)
	Upsert(note *entity.DailyNote) (*entity.DailyNote, error)
}

type NoteSaveRequest struct {
	Message string `json:"message" validate:"max=4000"`
}

type NoteResponse struct {
	DayDate   string `json:"day_date"`
	Message   string `json:"message"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type NoteRangeResponse struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Loading bool     `json:"loading"`
	Days    []string `json:"days_with_notes"`
}

// DefaultNoteService keeps the day-range cache of note messages and resolves
// selected days from it, falling back to a direct fetch for misses.
type DefaultNoteService struct {
	NoteRepo NoteRepository
	Validate *validator.Validate
	Window   cache.Window
	Notes    *cache.DayMap[string]
	Clock    func() time.Time
}

func NewNoteService(noteRepo NoteRepository, validate *validator.Validate, window cache.Window) *DefaultNoteService {
	return &DefaultNoteService{
		NoteRepo: noteRepo,
		Validate: validate,
		Window:   window,
		Notes:    cache.NewDayMap[string](),
		Clock:    time.Now,
	}
}

// LoadRange fetches every note inside the window and swaps the full mapping
// in one step. On failure the previous mapping stays last-known-good.
func (s *DefaultNoteService) LoadRange() apierror.ErrorResponse {
	from, to := s.Window.Bounds(s.Clock())
	s.Notes.BeginLoad()

	rows, err := s.NoteRepo.FindRange(from, to)
	if err != nil {
		s.Notes.EndLoad()
		log.Errorf("failed to load notes range [%s - %s]: %v", from, to, err)
		return apierror.InternalServerError
	}

	entries := make(map[string]string, len(rows))
	for _, row := range rows {
		entries[row.DayDate] = row.Message
	}
	s.Notes.ReplaceAll(from, to, entries)
	return nil
}

// GetRange reports the window bounds and which cached days carry a
// non-blank note, for calendar decoration.
func (s *DefaultNoteService) GetRange() *NoteRangeResponse {
	from, to := s.Notes.Bounds()
	if from == "" {
		from, to = s.Window.Bounds(s.Clock())
	}

	days := make([]string, 0)
	for day, message := range s.Notes.Snapshot() {
		if strings.TrimSpace(message) != "" {
			days = append(days, day)
		}
	}
	sort.Strings(days)

	return &NoteRangeResponse{
		From:    from,
		To:      to,
		Loading: s.Notes.Loading(),
		Days:    days,
	}
}

// GetDay resolves one selected day: cache hits (even empty messages) are
// served without touching the backend, misses fetch directly and write the
// result back so re-selection is free. Days outside the window always take
// the direct path because they are never part of the range mapping.
func (s *DefaultNoteService) GetDay(day string) (*NoteResponse, apierror.ErrorResponse) {
	if _, err := utils.ParseDay(day); err != nil {
		return nil, apierror.NewInvalidParamTypeError("day", "YYYY-MM-DD date")
	}

	if cached, ok := s.Notes.Get(day); ok {
		return &NoteResponse{DayDate: day, Message: cached}, nil
	}

	row, err := s.NoteRepo.FindByDay(day)
	if err != nil {
		log.Errorf("failed to fetch note for %s: %v", day, err)
		return nil, apierror.InternalServerError
	}

	message := ""
	resp := &NoteResponse{DayDate: day, Message: ""}
	if row != nil {
		message = row.Message
		resp.Message = row.Message
		resp.UpdatedAt = utils.FormatEpoch(row.UpdatedAt)
	}

	s.Notes.Put(day, message)
	return resp, nil
}

// Save upserts the note for a day and folds the stored row back into the
// cache. The echoed value wins over the submitted one so any normalization
// done at the storage layer is what subsequent reads see.
func (s *DefaultNoteService) Save(day string, req *NoteSaveRequest) (*NoteResponse, apierror.ErrorResponse) {
	if _, err := utils.ParseDay(day); err != nil {
		return nil, apierror.NewInvalidParamTypeError("day", "YYYY-MM-DD date")
	}

	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	stored, err := s.NoteRepo.Upsert(&entity.DailyNote{DayDate: day, Message: req.Message})
	if err != nil {
		log.Errorf("failed to save note for %s: %v", day, err)
		return nil, apierror.InternalServerError
	}

	s.Notes.Put(stored.DayDate, stored.Message)

	return &NoteResponse{
		DayDate:   stored.DayDate,
		Message:   stored.Message,
		UpdatedAt: utils.FormatEpoch(stored.UpdatedAt),
	}, nil
}
