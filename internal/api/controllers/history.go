package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"
	"github.com/tubegrab/tubegrab/internal/app"
	"github.com/tubegrab/tubegrab/internal/domain"
)

type HistoryController struct {
	App *app.Context
}

// Recent lists terminal download outcomes, newest first.
func (ctrl *HistoryController) Recent(c *echo.Context) error {
	if ctrl.App.History == nil {
		return c.JSON(http.StatusOK, []*domain.DownloadRecord{})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	records, err := ctrl.App.History.RecentDownloads(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	if records == nil {
		records = []*domain.DownloadRecord{}
	}

	return c.JSON(http.StatusOK, records)
}
