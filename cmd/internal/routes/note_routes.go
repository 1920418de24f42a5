package routes

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ivchonotes/cmd/internal/service"
	"ivchonotes/cmd/internal/utils/apierror"
)

type NoteService interface {
	GetRange() *service.NoteRangeResponse
	GetDay(day string) (*service.NoteResponse, apierror.ErrorResponse)
	Save(day string, req *service.NoteSaveRequest) (*service.NoteResponse, apierror.ErrorResponse)
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

func (n *DefaultNoteRoute) GetRange(c echo.Context) error {
	return c.JSON(http.StatusOK, n.NoteService.GetRange())
}

func (n *DefaultNoteRoute) GetDay(c echo.Context) error {
	day := strings.TrimSpace(c.Param("day"))
	if day == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("day"))
	}

	note, apierr := n.NoteService.GetDay(day)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) SaveNote(c echo.Context) error {
	day := strings.TrimSpace(c.Param("day"))
	if day == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("day"))
	}

	var req service.NoteSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	note, apierr := n.NoteService.Save(day, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}
