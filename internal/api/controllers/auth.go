package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/tubegrab/tubegrab/internal/app"
	"github.com/tubegrab/tubegrab/internal/domain"
)

type AuthController struct {
	App *app.Context
}

// Check reports whether a persisted credential artifact exists. Also serves
// /api/cookies/status, which is an alias.
func (ctrl *AuthController) Check(c *echo.Context) error {
	method := "none"
	if ctrl.App.Cookies.Exists() {
		method = "cookies"
	}

	return c.JSON(http.StatusOK, AuthStatusResponse{
		Authenticated: method == "cookies",
		Method:        method,
	})
}

// Logout acknowledges the request but keeps the persisted cookie file;
// manually uploaded cookies survive until explicitly deleted.
func (ctrl *AuthController) Logout(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Upload persists a multipart cookie file after validating it is non-empty.
// Rejected uploads leave no artifact behind.
func (ctrl *AuthController) Upload(c *echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file provided"})
	}

	if fh.Filename == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file selected"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid cookie file: " + err.Error()})
	}
	defer f.Close()

	if err := ctrl.App.Cookies.Save(f); err != nil {
		if errors.Is(err, domain.ErrEmptyCookieFile) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Cookie file is empty"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	ctrl.App.Logger.Info("Cookie file uploaded")

	return c.JSON(http.StatusOK, CookieUploadResponse{
		Success:       true,
		Message:       "Cookies uploaded successfully",
		Authenticated: true,
	})
}

// Delete removes the persisted cookie file.
func (ctrl *AuthController) Delete(c *echo.Context) error {
	if err := ctrl.App.Cookies.Delete(); err != nil {
		if errors.Is(err, domain.ErrNoCookies) {
			return c.JSON(http.StatusNotFound, CookieActionResponse{
				Success: false,
				Message: "No cookies found",
			})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	ctrl.App.Logger.Info("Cookie file deleted")

	return c.JSON(http.StatusOK, CookieActionResponse{
		Success: true,
		Message: "Cookies deleted successfully",
	})
}
