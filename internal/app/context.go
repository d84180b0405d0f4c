package app

import (
	"context"
	"io"

	"github.com/tubegrab/tubegrab/internal/domain"
	"github.com/tubegrab/tubegrab/internal/infra/config"
	"github.com/tubegrab/tubegrab/internal/infra/logger"
	"github.com/tubegrab/tubegrab/internal/progress"
	"github.com/tubegrab/tubegrab/internal/session"
	"github.com/tubegrab/tubegrab/internal/ytdlp"
)

// Extractor is the boundary to the external media-extraction engine.
// Controllers call it without importing the concrete adapter.
type Extractor interface {
	ExtractInfo(ctx context.Context, url, cookieFile string) (*ytdlp.Info, error)
	Download(ctx context.Context, req ytdlp.Request, sink ytdlp.EventSink) error
}

// CookieJar manages the persisted credential artifact and per-request
// temp cookie files.
type CookieJar interface {
	Exists() bool
	Save(r io.Reader) error
	Delete() error
	Resolve(inline string) (string, func(), error)
}

// History records terminal session outcomes. Nil when disabled.
type History interface {
	SaveDownload(rec *domain.DownloadRecord) error
	RecentDownloads(limit int) ([]*domain.DownloadRecord, error)
}

// Context holds the core environment and shared resources for the server.
// It acts as the "Single Source of Truth" for the application state.
type Context struct {
	Config *config.Config
	Logger *logger.Logger

	Extractor Extractor
	Progress  *progress.Store
	Sessions  *session.Runner
	Cookies   CookieJar
	History   History

	// FFmpegAvailable is probed once at startup; clients use it to decide
	// whether merged/transcoded renditions can be offered
	FFmpegAvailable bool
}

// NewContext initializes the base environment.
func NewContext(cfg *config.Config, log *logger.Logger) *Context {
	return &Context{
		Config: cfg,
		Logger: log,
	}
}
