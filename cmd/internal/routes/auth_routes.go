package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ivchonotes/cmd/internal/service"
	"ivchonotes/cmd/internal/utils/apierror"
)

type AuthService interface {
	Login(req *service.LoginRequest) (*service.LoginResponse, apierror.ErrorResponse)
	Logout()
	GetSession() *service.SessionResponse
}

type DefaultAuthRoute struct {
	AuthService AuthService
}

func NewAuthDefault(authService AuthService) *DefaultAuthRoute {
	return &DefaultAuthRoute{AuthService: authService}
}

func (a *DefaultAuthRoute) Login(c echo.Context) error {
	var req service.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := a.AuthService.Login(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *DefaultAuthRoute) Logout(c echo.Context) error {
	a.AuthService.Logout()
	return c.NoContent(http.StatusOK)
}

func (a *DefaultAuthRoute) GetSession(c echo.Context) error {
	return c.JSON(http.StatusOK, a.AuthService.GetSession())
}
