package live

import (
	"encoding/json"
	"fmt"
)

// Frame types.
const (
	FrameNavigate = "navigate"
	FramePop      = "pop"
	FrameRender   = "render"
	FramePush     = "push"
	FrameReplace  = "replace"
	FrameGo       = "go"
	FrameReload   = "reload"
	FrameError    = "error"
)

// Frame is one message on the live socket.
type Frame struct {
	Type    string `json:"type"`
	URL     string `json:"url,omitempty"`
	Replace bool   `json:"replace,omitempty"`
	HTML    string `json:"html,omitempty"`
	Delta   int    `json:"delta,omitempty"`
	Key     string `json:"key,omitempty"`
	State   any    `json:"state,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DecodeFrame parses a client frame.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("live: decode frame: %w", err)
	}
	switch f.Type {
	case FrameNavigate, FramePop:
		return f, nil
	case "":
		return Frame{}, fmt.Errorf("live: frame has no type")
	}
	return Frame{}, fmt.Errorf("live: unexpected frame type %q", f.Type)
}
