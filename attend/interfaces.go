package attend

import "context"

// Logger is the minimal logging abstraction used across modules.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// Config provides typed access to configuration values.
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string
}

// MeetingRepository defines storage operations for accepted meeting links.
type MeetingRepository interface {
	Save(ctx context.Context, record *MeetingRecord) (bool, error)
	FindByURL(ctx context.Context, platform, canonicalURL string) (*MeetingRecord, error)
	List(ctx context.Context, platform string) ([]*MeetingRecord, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// WorkerPool limits concurrency for background tasks.
type WorkerPool interface {
	Submit(task func()) error
	SubmitWait(ctx context.Context, task func() error) error
	Shutdown(ctx context.Context) error
	Size() int
}
