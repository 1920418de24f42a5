package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"ivchonotes/cmd/internal/cache"
	"ivchonotes/cmd/internal/domain/entity"
	"ivchonotes/cmd/internal/utils"
)

// fakeNoteRepo stores notes keyed by day and counts backend round-trips. Its
// Upsert trims the message, standing in for normalization the real backend
// performs, so echo-back behavior is observable.
type fakeNoteRepo struct {
	notes map[string]*entity.DailyNote

	rangeCalls  int
	byDayCalls  int
	upsertCalls int
	failNext    error
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[string]*entity.DailyNote{}}
}

func (f *fakeNoteRepo) takeErr() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeNoteRepo) FindRange(fromDay, toDay string) ([]*entity.DailyNote, error) {
	f.rangeCalls++
	if err := f.takeErr(); err != nil {
		return nil, err
	}

	var out []*entity.DailyNote
	for day, note := range f.notes {
		if day >= fromDay && day <= toDay {
			out = append(out, note)
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) FindByDay(day string) (*entity.DailyNote, error) {
	f.byDayCalls++
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	return f.notes[day], nil
}

func (f *fakeNoteRepo) Upsert(note *entity.DailyNote) (*entity.DailyNote, error) {
	f.upsertCalls++
	if err := f.takeErr(); err != nil {
		return nil, err
	}

	stored := &entity.DailyNote{
		DayDate:   note.DayDate,
		Message:   strings.TrimSpace(note.Message),
		UpdatedAt: utils.NowUTC(),
	}
	f.notes[note.DayDate] = stored
	return stored, nil
}

func newNoteService(t *testing.T, repo *fakeNoteRepo) *DefaultNoteService {
	t.Helper()
	svc := NewNoteService(repo, newTestValidator(t), cache.Window{PastDays: 60, FutureDays: 90})
	svc.Clock = func() time.Time {
		return time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestNoteLoadRangeCachesExactlyTheReportedRows(t *testing.T) {
	repo := newFakeNoteRepo()
	repo.notes["2025-08-15"] = &entity.DailyNote{DayDate: "2025-08-15", Message: "standup moved"}
	repo.notes["2025-09-01"] = &entity.DailyNote{DayDate: "2025-09-01", Message: ""}
	repo.notes["2026-01-01"] = &entity.DailyNote{DayDate: "2026-01-01", Message: "outside window"}

	svc := newNoteService(t, repo)
	if apierr := svc.LoadRange(); apierr != nil {
		t.Fatalf("LoadRange() = %v", apierr)
	}

	if _, ok := svc.Notes.Get("2025-08-15"); !ok {
		t.Error("day with a row should be cached")
	}
	if _, ok := svc.Notes.Get("2025-09-01"); !ok {
		t.Error("day with an empty-message row should be cached")
	}
	if _, ok := svc.Notes.Get("2025-08-20"); ok {
		t.Error("day without a row should not be cached")
	}
	if _, ok := svc.Notes.Get("2026-01-01"); ok {
		t.Error("row outside the window should not be cached")
	}
}

func TestNoteLoadRangeFailureKeepsLastKnownGood(t *testing.T) {
	repo := newFakeNoteRepo()
	repo.notes["2025-08-15"] = &entity.DailyNote{DayDate: "2025-08-15", Message: "keep"}

	svc := newNoteService(t, repo)
	if apierr := svc.LoadRange(); apierr != nil {
		t.Fatalf("LoadRange() = %v", apierr)
	}

	repo.failNext = errors.New("backend down")
	if apierr := svc.LoadRange(); apierr == nil {
		t.Fatal("expected error from failed range load")
	}

	if got, ok := svc.Notes.Get("2025-08-15"); !ok || got != "keep" {
		t.Errorf("cache should keep the previous mapping, got (%q, %v)", got, ok)
	}
	if svc.Notes.Loading() {
		t.Error("loading flag must clear even when the load fails")
	}
}

func TestNoteGetDayCacheHitSkipsBackend(t *testing.T) {
	repo := newFakeNoteRepo()
	repo.notes["2025-08-15"] = &entity.DailyNote{DayDate: "2025-08-15", Message: "standup moved"}

	svc := newNoteService(t, repo)
	if apierr := svc.LoadRange(); apierr != nil {
		t.Fatalf("LoadRange() = %v", apierr)
	}

	resp, apierr := svc.GetDay("2025-08-15")
	if apierr != nil {
		t.Fatalf("GetDay() = %v", apierr)
	}
	if resp.Message != "standup moved" {
		t.Errorf("Message = %q", resp.Message)
	}
	if repo.byDayCalls != 0 {
		t.Errorf("cache hit must not reach the backend, got %d calls", repo.byDayCalls)
	}
}

func TestNoteGetDayMissFetchesAndWritesBack(t *testing.T) {
	repo := newFakeNoteRepo()
	svc := newNoteService(t, repo)
	if apierr := svc.LoadRange(); apierr != nil {
		t.Fatalf("LoadRange() = %v", apierr)
	}

	// Outside the cached window: always a direct fetch, never "no content".
	day := "2026-03-01"
	resp, apierr := svc.GetDay(day)
	if apierr != nil {
		t.Fatalf("GetDay() = %v", apierr)
	}
	if resp.Message != "" {
		t.Errorf("Message = %q, want empty for a day with no row", resp.Message)
	}
	if repo.byDayCalls != 1 {
		t.Fatalf("byDayCalls = %d, want 1", repo.byDayCalls)
	}

	// The miss is written back, so re-selection is free.
	if _, apierr := svc.GetDay(day); apierr != nil {
		t.Fatalf("GetDay() second call = %v", apierr)
	}
	if repo.byDayCalls != 1 {
		t.Errorf("byDayCalls = %d after re-selection, want 1", repo.byDayCalls)
	}
}

func TestNoteGetDayRejectsBadDay(t *testing.T) {
	svc := newNoteService(t, newFakeNoteRepo())
	if _, apierr := svc.GetDay("15-08-2025"); apierr == nil {
		t.Error("expected error for malformed day")
	}
}

func TestNoteSaveEchoesStoredValue(t *testing.T) {
	repo := newFakeNoteRepo()
	svc := newNoteService(t, repo)
	if apierr := svc.LoadRange(); apierr != nil {
		t.Fatalf("LoadRange() = %v", apierr)
	}

	resp, apierr := svc.Save("2025-08-15", &NoteSaveRequest{Message: "  standup moved  "})
	if apierr != nil {
		t.Fatalf("Save() = %v", apierr)
	}

	// The backend trimmed the message; the cache must hold the echoed value,
	// not the submitted one.
	if resp.Message != "standup moved" {
		t.Errorf("Message = %q, want backend-normalized value", resp.Message)
	}
	if cached, _ := svc.Notes.Get("2025-08-15"); cached != "standup moved" {
		t.Errorf("cached = %q, want backend-normalized value", cached)
	}
}

func TestNoteUpsertIdempotence(t *testing.T) {
	repo := newFakeNoteRepo()
	svc := newNoteService(t, repo)
	if apierr := svc.LoadRange(); apierr != nil {
		t.Fatalf("LoadRange() = %v", apierr)
	}

	for i := 0; i < 2; i++ {
		resp, apierr := svc.Save("2025-08-15", &NoteSaveRequest{Message: "standup moved"})
		if apierr != nil {
			t.Fatalf("Save() #%d = %v", i+1, apierr)
		}
		if resp.Message != "standup moved" {
			t.Errorf("Save() #%d Message = %q", i+1, resp.Message)
		}
	}

	resp, apierr := svc.GetDay("2025-08-15")
	if apierr != nil {
		t.Fatalf("GetDay() = %v", apierr)
	}
	if resp.Message != "standup moved" {
		t.Errorf("read-after-upsert Message = %q", resp.Message)
	}
}

func TestNoteEmptyWindowThenSaveThenReselect(t *testing.T) {
	repo := newFakeNoteRepo()
	svc := newNoteService(t, repo)

	if apierr := svc.LoadRange(); apierr != nil {
		t.Fatalf("LoadRange() = %v", apierr)
	}

	today := utils.ToISODate(svc.Clock())

	// Selecting today with no rows shows "no note yet".
	resp, apierr := svc.GetDay(today)
	if apierr != nil {
		t.Fatalf("GetDay() = %v", apierr)
	}
	if resp.Message != "" {
		t.Errorf("Message = %q, want empty before any save", resp.Message)
	}

	if _, apierr := svc.Save(today, &NoteSaveRequest{Message: "standup moved"}); apierr != nil {
		t.Fatalf("Save() = %v", apierr)
	}

	resp, apierr = svc.GetDay(today)
	if apierr != nil {
		t.Fatalf("GetDay() after save = %v", apierr)
	}
	if resp.Message != "standup moved" {
		t.Errorf("re-selected Message = %q, want %q", resp.Message, "standup moved")
	}

	// Calendar decoration now marks today.
	rangeResp := svc.GetRange()
	found := false
	for _, day := range rangeResp.Days {
		if day == today {
			found = true
		}
	}
	if !found {
		t.Error("today should carry a has-content marker after the save")
	}
}

func TestNoteBlankMessagesCarryNoMarker(t *testing.T) {
	repo := newFakeNoteRepo()
	repo.notes["2025-08-15"] = &entity.DailyNote{DayDate: "2025-08-15", Message: "   "}

	svc := newNoteService(t, repo)
	if apierr := svc.LoadRange(); apierr != nil {
		t.Fatalf("LoadRange() = %v", apierr)
	}

	if days := svc.GetRange().Days; len(days) != 0 {
		t.Errorf("Days = %v, want none for whitespace-only notes", days)
	}
}
