package domain

type Status string

const (
	StatusStarting    Status = "starting"
	StatusDownloading Status = "downloading"
	StatusProcessing  Status = "processing" // Post-processing (ffmpeg merge/transcode)
	StatusCompleted   Status = "completed"
	StatusError       Status = "error"
	StatusUnknown     Status = "unknown"
)

func (s Status) String() string {
	return string(s)
}

// Terminal reports whether the session has reached a final state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// ProgressRecord is the per-session status snapshot exposed to polling clients.
// One record exists per live request ID; lookups of unknown IDs yield
// a record with StatusUnknown.
type ProgressRecord struct {
	Status   Status  `json:"status"`
	Progress float64 `json:"progress"`
	Stage    string  `json:"stage,omitempty"`
	Speed    string  `json:"speed,omitempty"`
	ETA      string  `json:"eta,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// UnknownProgress is what pollers see for request IDs that were never
// registered or whose records have already been evicted.
func UnknownProgress() ProgressRecord {
	return ProgressRecord{Status: StatusUnknown}
}
