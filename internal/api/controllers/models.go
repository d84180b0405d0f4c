package controllers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tubegrab/tubegrab/internal/domain"
	"github.com/tubegrab/tubegrab/internal/media"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type InfoRequest struct {
	URL     string `json:"url"`
	Cookies string `json:"cookies"`
}

type InfoResponse struct {
	Title           string              `json:"title"`
	Thumbnail       string              `json:"thumbnail"`
	Duration        float64             `json:"duration"`
	Formats         []media.VideoFormat `json:"formats"`
	AudioFormats    []media.AudioFormat `json:"audio_formats"`
	Author          string              `json:"author"`
	FFmpegAvailable bool                `json:"ffmpeg_available"`
}

// downloadParams is accepted as a JSON body (extension) or query string
// (web client). Height is kept raw because extensions send it as a number
// and the query string as a string.
type downloadParams struct {
	URL          string          `json:"url"`
	Height       json.RawMessage `json:"height"`
	AudioQuality string          `json:"audio_quality"`
	ID           string          `json:"id"`
	Cookies      string          `json:"cookies"`
}

// Target resolves which rendition shape the request selects. Audio quality
// wins when both are present, mirroring mutual exclusivity at the client.
func (p downloadParams) Target() (domain.Target, error) {
	if p.AudioQuality != "" {
		return domain.AudioTarget(p.AudioQuality), nil
	}

	raw := strings.Trim(strings.TrimSpace(string(p.Height)), `"`)
	height, err := strconv.Atoi(raw)
	if err != nil || height <= 0 {
		return domain.Target{}, domain.ErrNoTarget
	}

	return domain.VideoTarget(height), nil
}

type AuthStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Method        string `json:"method"`
}

type CookieUploadResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Authenticated bool   `json:"authenticated"`
}

type CookieActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
