package domain

import "errors"

// ErrMissingURL indicates a request without the required source URL
var ErrMissingURL = errors.New("URL is required")

// ErrNoTarget indicates neither a video height nor an audio quality was selected
var ErrNoTarget = errors.New("either height or audio_quality is required")

// ErrOutputNotFound indicates the engine returned cleanly but no file
// with the session's temp prefix exists in the download directory
var ErrOutputNotFound = errors.New("download failed or file not found")

// ErrEmptyCookieFile indicates an uploaded credential artifact with no content
var ErrEmptyCookieFile = errors.New("cookie file is empty")

// ErrNoCookies indicates no persisted credential artifact exists
var ErrNoCookies = errors.New("no cookies found")
