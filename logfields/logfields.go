package logfields

import "log/slog"

// Canonical log field names shared by every package.
const (
	KeyRoute      = "route"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyURL        = "url"
	KeyStatus     = "status"
	KeyCount      = "count"
	KeyTarget     = "target"
	KeySlug       = "slug"
	KeyAddr       = "addr"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Route(r string) slog.Attr { return slog.String(KeyRoute, r) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func File(f string) slog.Attr { return slog.String(KeyFile, f) }
func URL(u string) slog.Attr { return slog.String(KeyURL, u) }
func Status(code int) slog.Attr { return slog.Int(KeyStatus, code) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
func Target(name string) slog.Attr { return slog.String(KeyTarget, name) }
func Slug(s string) slog.Attr { return slog.String(KeySlug, s) }
func Addr(a string) slog.Attr { return slog.String(KeyAddr, a) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
