package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component creates an attribute naming the emitting component.
func Component(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("component", name)
}

// User creates an attribute for a username.
func User(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("user", name)
}

// Attempts creates an attribute for a failed logon count.
func Attempts(n int) slog.Attr {
	return slog.Int("attempts", n)
}

// Method creates an attribute for HTTP methods.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path creates an attribute for URL paths.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// RequestID creates an attribute for HTTP request IDs.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Decision creates an attribute for the dispatcher outcome kind.
func Decision(kind string) slog.Attr {
	return slog.String("decision", kind)
}

// Redirect creates an attribute for a redirect location.
func Redirect(location string) slog.Attr {
	if location == "" {
		return slog.Attr{}
	}
	return slog.String("location", location)
}
