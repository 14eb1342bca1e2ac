package live

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vrouter/pkg/history"
	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/routepath"
	"github.com/vango-dev/vrouter/pkg/router"
	"github.com/vango-dev/vrouter/pkg/vdom"
)

// ErrTooManyRenders is returned when one frame keeps re-rendering, which
// usually means two redirects point at each other.
var ErrTooManyRenders = errors.New("live: too many renders for one navigation")

// Session is one live connection and the history it drives.
type Session struct {
	conn   *websocket.Conn
	config Config

	writeMu sync.Mutex

	history history.History
	node    *vdom.VNode
	resolve func(href string) location.Path
	pop     func(f Frame) error

	// announce tells the client the key of its first entry.
	announce func() error

	// dirty is set by the history listener; it is only touched by the
	// goroutine running Run.
	dirty    bool
	unlisten func()
	release  func()

	closeOnce sync.Once
	done      chan struct{}
}

func newSession(conn *websocket.Conn, config Config, initial string) (*Session, error) {
	s := &Session{
		conn:   conn,
		config: config,
		done:   make(chan struct{}),
	}

	root := vdom.Func(func(*vdom.Scope) *vdom.VNode { return config.Root() })

	if config.Hash {
		r, err := router.NewHashRouter(router.HashRouterProps{
			Basename:            config.Basename,
			HashType:            config.HashType,
			GetUserConfirmation: config.GetUserConfirmation,
			Initial:             initial,
			Driver:              s,
			Logger:              config.Logger,
		}, root)
		if err != nil {
			return nil, err
		}
		h := r.History()
		s.history, s.node, s.resolve, s.release = h, r.Node(), h.ResolveHref, r.Release
		s.pop = func(f Frame) error { return h.HandlePop(f.URL) }
	} else {
		var in location.Input
		if initial != "" {
			if _, err := routepath.CheckNav(initial); err != nil {
				return nil, err
			}
			in = location.Path(initial)
		}
		r, err := router.NewBrowserRouter(router.BrowserRouterProps{
			Basename:            config.Basename,
			KeyLength:           config.KeyLength,
			GetUserConfirmation: config.GetUserConfirmation,
			Initial:             in,
			Driver:              s,
			Logger:              config.Logger,
		}, root)
		if err != nil {
			return nil, err
		}
		h := r.History()
		s.history, s.node, s.resolve, s.release = h, r.Node(), h.ResolveHref, r.Release
		s.pop = func(f Frame) error {
			if _, err := routepath.CheckNav(f.URL); err != nil {
				return err
			}
			return h.HandlePop(f.URL, history.EntryState{Key: f.Key, State: f.State})
		}
		s.announce = func() error {
			loc := h.Location()
			return s.ReplaceState(h.CreateHref(loc), history.EntryState{Key: loc.Key, State: loc.State})
		}
	}

	s.unlisten = s.history.Listen(func(location.Location, history.Action) { s.dirty = true })
	return s, nil
}

// History returns the session's history.
func (s *Session) History() history.History { return s.history }

// Run renders the initial location and serves frames until the connection
// closes or ctx is done.
func (s *Session) Run(ctx context.Context) {
	defer s.Close()
	s.config.Metrics.RecordSessionOpen()

	s.conn.SetReadLimit(s.config.MaxMessageSize)
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})
	go s.heartbeat(ctx)

	if s.announce != nil {
		if err := s.announce(); err != nil {
			s.config.Logger.Debug("live announce failed", "error", err)
			return
		}
	}
	s.dirty = true
	if err := s.flush(ctx); err != nil {
		s.sendError(err)
	}

	for {
		// Set read deadline
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.config.Logger.Error("live read error", "error", err)
			}
			return
		}

		f, err := DecodeFrame(msg)
		if err != nil {
			s.config.Logger.Warn("live frame rejected", "error", err)
			s.sendError(err)
			continue
		}
		s.config.Metrics.RecordFrame("in", f.Type)

		if err := s.handle(ctx, f); err != nil {
			s.config.Logger.Debug("live frame failed", "type", f.Type, "url", f.URL, "error", err)
			s.sendError(err)
		}
	}
}

func (s *Session) handle(ctx context.Context, f Frame) error {
	switch f.Type {
	case FrameNavigate:
		to := s.resolve(f.URL)
		if _, err := routepath.CheckNav(string(to)); err != nil {
			return err
		}
		var err error
		if f.Replace {
			err = s.history.Replace(to, nil)
		} else {
			err = s.history.Push(to, nil)
		}
		if err != nil {
			return err
		}
	case FramePop:
		if err := s.pop(f); err != nil {
			return err
		}
	}
	return s.flush(ctx)
}

// flush renders until a render makes no navigation, then sends that
// render's HTML.
func (s *Session) flush(ctx context.Context) error {
	for i := 0; s.dirty; i++ {
		if i >= s.config.MaxRenders {
			s.dirty = false
			return ErrTooManyRenders
		}
		s.dirty = false

		html, err := s.config.Renderer.RenderToString(s.node, vdom.NewScope(ctx))
		if err != nil {
			s.config.Metrics.RecordRenderError(err)
			return err
		}
		if !s.dirty {
			return s.send(Frame{Type: FrameRender, HTML: html})
		}
	}
	return nil
}

// PushState implements history.Driver.
func (s *Session) PushState(href string, state any) error {
	return s.send(stateFrame(FramePush, href, state))
}

// ReplaceState implements history.Driver.
func (s *Session) ReplaceState(href string, state any) error {
	return s.send(stateFrame(FrameReplace, href, state))
}

// Go implements history.Driver.
func (s *Session) Go(delta int) error {
	return s.send(Frame{Type: FrameGo, Delta: delta})
}

// Reload implements history.Driver.
func (s *Session) Reload(href string) error {
	return s.send(Frame{Type: FrameReload, URL: href})
}

func stateFrame(frameType, href string, state any) Frame {
	f := Frame{Type: frameType, URL: href}
	if entry, ok := state.(history.EntryState); ok {
		f.Key, f.State = entry.Key, entry.State
	}
	return f
}

func (s *Session) send(f Frame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteJSON(f); err != nil {
		return err
	}
	s.config.Metrics.RecordFrame("out", f.Type)
	return nil
}

func (s *Session) sendError(err error) {
	if sendErr := s.send(Frame{Type: FrameError, Error: err.Error()}); sendErr != nil {
		s.config.Logger.Debug("live error frame not sent", "error", sendErr)
	}
}

func (s *Session) heartbeat(ctx context.Context) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			s.Close()
			return
		case <-ticker.C:
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

// Close ends the session. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.unlisten()
		s.release()

		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
		s.config.Metrics.RecordSessionClose()
	})
}
