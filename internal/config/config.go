package config

import (
	"os"
	"strings"
)

const defaultBackendURL = "http://localhost:3001"

// BackendURL returns the backend origin from BACKEND_URL, falling back to
// the local endpoint when unset
func BackendURL() string {
	v := strings.TrimSpace(os.Getenv("BACKEND_URL"))
	if v == "" {
		v = defaultBackendURL
	}
	return strings.TrimRight(v, "/")
}

// PushURL derives the websocket endpoint from the backend origin
func PushURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/ws"
}
