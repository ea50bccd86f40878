package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyDocID      = "doc_id"
	KeyPermalink  = "permalink"
	KeyVersion    = "version"
	KeyPlugin     = "plugin"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyPages      = "pages"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRequestID  = "request_id"
	KeyRemoteAddr = "remote_addr"
	KeyError      = "error"
)

func DocID(id string) slog.Attr       { return slog.String(KeyDocID, id) }
func Permalink(p string) slog.Attr    { return slog.String(KeyPermalink, p) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Plugin(id string) slog.Attr      { return slog.String(KeyPlugin, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Output(dir string) slog.Attr     { return slog.String(KeyOutput, dir) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
