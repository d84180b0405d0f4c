package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/tubegrab/tubegrab/internal/app"
	"github.com/tubegrab/tubegrab/internal/domain"
	"github.com/tubegrab/tubegrab/internal/media"
	"github.com/tubegrab/tubegrab/internal/ytdlp"
)

type MediaController struct {
	App *app.Context
}

// Info calls the extraction engine in metadata-only mode and translates the
// raw format list into the deduplicated rendition menus clients render.
func (ctrl *MediaController) Info(c *echo.Context) error {
	var req InfoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if req.URL == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrMissingURL.Error()})
	}

	cookieFile, cleanup, err := ctrl.App.Cookies.Resolve(req.Cookies)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	defer cleanup()

	info, err := ctrl.App.Extractor.ExtractInfo(c.Request().Context(), req.URL, cookieFile)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, InfoResponse{
		Title:           info.Title,
		Thumbnail:       info.Thumbnail,
		Duration:        info.Duration,
		Formats:         media.VideoFormats(info),
		AudioFormats:    media.AudioFormats(info),
		Author:          info.Uploader,
		FFmpegAvailable: ctrl.App.FFmpegAvailable,
	})
}

// Progress is a pure read of the progress store; identifiers that were never
// registered (or already evicted) report status unknown.
func (ctrl *MediaController) Progress(c *echo.Context) error {
	return c.JSON(http.StatusOK, ctrl.App.Progress.Get(c.Param("request_id")))
}

// Download runs one full session: register progress, invoke the engine,
// locate the produced file by temp prefix, stream it as an attachment and
// schedule deferred disposal.
func (ctrl *MediaController) Download(c *echo.Context) error {
	params, err := ctrl.downloadParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if params.URL == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrMissingURL.Error()})
	}

	target, err := params.Target()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	requestID := params.ID
	if requestID == "" {
		requestID = domain.NewRequestID()
	}

	sess := domain.NewSession(requestID, params.URL, target)
	runner := ctrl.App.Sessions
	startedAt := time.Now()

	runner.Begin(requestID)

	cookieFile, cleanup, err := ctrl.App.Cookies.Resolve(params.Cookies)
	if err != nil {
		runner.Fail(requestID, err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	defer cleanup()

	req := ytdlp.Request{
		URL:            params.URL,
		OutputTemplate: sess.OutputTemplate(ctrl.App.Config.Download.Dir),
		CookieFile:     cookieFile,
		Target:         target,
	}

	ctrl.App.Logger.Info("Session %s: downloading %s (%s %s)", requestID, params.URL, target.Kind, target.QualityLabel())

	// The engine call is not tied to the request context: a client that
	// drops the connection stops observing progress, it does not abort the
	// download server-side
	if err := ctrl.App.Extractor.Download(context.Background(), req, runner.Sink(requestID)); err != nil {
		runner.Fail(requestID, err)
		ctrl.recordHistory(sess, startedAt, domain.StatusError, err, "")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	outputFile, err := runner.LocateOutput(sess.TempID)
	if err != nil {
		runner.Fail(requestID, err)
		ctrl.recordHistory(sess, startedAt, domain.StatusError, err, "")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	runner.Complete(requestID)
	ctrl.recordHistory(sess, startedAt, domain.StatusCompleted, nil, target.DownloadName())

	// Fires after the attachment is fully written, or after the transfer
	// fails mid-stream; disposal happens either way
	defer runner.ScheduleDisposal(requestID, outputFile)

	// Serve relative to the download dir, which may be an absolute path
	// outside the process working directory
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", target.DownloadName()))
	return c.FileFS(filepath.Base(outputFile), os.DirFS(ctrl.App.Config.Download.Dir))
}

// downloadParams reads the request from the JSON body (POST) or the query
// string (GET).
func (ctrl *MediaController) downloadParams(c *echo.Context) (downloadParams, error) {
	if c.Request().Method == http.MethodPost {
		var p downloadParams
		if err := c.Bind(&p); err != nil {
			return downloadParams{}, err
		}
		return p, nil
	}

	return downloadParams{
		URL:          c.QueryParam("url"),
		Height:       json.RawMessage(c.QueryParam("height")),
		AudioQuality: c.QueryParam("audio_quality"),
		ID:           c.QueryParam("id"),
		Cookies:      c.QueryParam("cookies"),
	}, nil
}

func (ctrl *MediaController) recordHistory(sess *domain.Session, started time.Time, status domain.Status, cause error, filename string) {
	// Only terminal outcomes belong in history
	if ctrl.App.History == nil || !status.Terminal() {
		return
	}

	rec := &domain.DownloadRecord{
		ID:          sess.RequestID,
		URL:         sess.URL,
		Kind:        sess.Target.Kind,
		Quality:     sess.Target.QualityLabel(),
		Status:      status,
		Filename:    filename,
		CreatedAt:   started,
		CompletedAt: time.Now(),
	}
	if cause != nil {
		rec.Error = cause.Error()
	}

	if err := ctrl.App.History.SaveDownload(rec); err != nil {
		ctrl.App.Logger.Warn("Failed to record history for %s: %v", sess.RequestID, err)
	}
}
