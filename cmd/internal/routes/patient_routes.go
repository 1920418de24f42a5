package routes

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ivchonotes/cmd/internal/service"
	"ivchonotes/cmd/internal/utils/apierror"
)

type PatientService interface {
	GetMarkers() *service.PatientMarkersResponse
	ListByDay(day string) ([]*service.PatientResponse, apierror.ErrorResponse)
	Create(req *service.PatientCreateRequest) (*service.PatientDayResponse, apierror.ErrorResponse)
	Update(id string, req *service.PatientUpdateRequest) (*service.PatientDayResponse, apierror.ErrorResponse)
	Delete(id string) (*service.PatientDayResponse, apierror.ErrorResponse)
}

type DefaultPatientRoute struct {
	PatientService PatientService
}

func NewPatientDefault(patientService PatientService) *DefaultPatientRoute {
	return &DefaultPatientRoute{PatientService: patientService}
}

func (p *DefaultPatientRoute) GetPatients(c echo.Context) error {
	day := strings.TrimSpace(c.QueryParam("day"))
	if day == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("day"))
	}

	patients, apierr := p.PatientService.ListByDay(day)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"patients": patients}
	return c.JSON(http.StatusOK, &resp)
}

func (p *DefaultPatientRoute) GetMarkers(c echo.Context) error {
	return c.JSON(http.StatusOK, p.PatientService.GetMarkers())
}

func (p *DefaultPatientRoute) CreatePatient(c echo.Context) error {
	var req service.PatientCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := p.PatientService.Create(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (p *DefaultPatientRoute) UpdatePatient(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	var req service.PatientUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := p.PatientService.Update(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (p *DefaultPatientRoute) DeletePatient(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	resp, apierr := p.PatientService.Delete(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
