package history

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	rerrors "github.com/vango-dev/vrouter/internal/errors"
	"github.com/vango-dev/vrouter/pkg/location"
)

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), &buf
}

type recordingDriver struct {
	calls []string
	gos   []int
}

func (d *recordingDriver) PushState(href string, _ any) error {
	d.calls = append(d.calls, "push "+href)
	return nil
}

func (d *recordingDriver) ReplaceState(href string, _ any) error {
	d.calls = append(d.calls, "replace "+href)
	return nil
}

func (d *recordingDriver) Go(delta int) error {
	d.gos = append(d.gos, delta)
	return nil
}

func (d *recordingDriver) Reload(href string) error {
	d.calls = append(d.calls, "reload "+href)
	return nil
}

// =============================================================================
// Memory
// =============================================================================

func TestMemoryDefaults(t *testing.T) {
	h, err := NewMemory(MemoryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if h.Length() != 1 {
		t.Errorf("Length() = %d, want 1", h.Length())
	}
	if h.Action() != ActionPop {
		t.Errorf("Action() = %s, want POP", h.Action())
	}
	if got := h.Location().Pathname; got != "/" {
		t.Errorf("Pathname = %q, want /", got)
	}
	if len(h.Location().Key) != DefaultKeyLength {
		t.Errorf("Key = %q, want %d chars", h.Location().Key, DefaultKeyLength)
	}
}

func TestMemoryInitialIndexClamped(t *testing.T) {
	idx := 7
	h, err := NewMemory(MemoryOptions{
		InitialEntries: []location.Input{location.Path("/one"), location.Path("/two")},
		InitialIndex:   &idx,
	})
	if err != nil {
		t.Fatal(err)
	}
	if h.Index() != 1 {
		t.Errorf("Index() = %d, want 1", h.Index())
	}
}

func TestMemoryInitialDecodeError(t *testing.T) {
	_, err := NewMemory(MemoryOptions{
		InitialEntries: []location.Input{location.Path("/%E0%A4%A")},
	})
	var de *location.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want *location.DecodeError", err)
	}
}

func TestMemoryPushTruncatesForwardEntries(t *testing.T) {
	h, _ := NewMemory(MemoryOptions{
		InitialEntries: []location.Input{location.Path("/one"), location.Path("/two"), location.Path("/three")},
	})

	if err := h.Go(-2); err != nil {
		t.Fatal(err)
	}
	if err := h.Push(location.Path("/four"), nil); err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, e := range h.Entries() {
		got = append(got, e.Pathname)
	}
	if strings.Join(got, ",") != "/one,/four" {
		t.Errorf("entries = %v, want [/one /four]", got)
	}
	if h.Index() != 1 || h.Action() != ActionPush {
		t.Errorf("index=%d action=%s", h.Index(), h.Action())
	}
}

func TestMemoryPushResolvesRelative(t *testing.T) {
	h, _ := NewMemory(MemoryOptions{
		InitialEntries: []location.Input{location.Path("/users/1")},
	})
	if err := h.Push(location.Path("2?tab=posts"), "payload"); err != nil {
		t.Fatal(err)
	}
	loc := h.Location()
	if loc.Pathname != "/users/2" || loc.Search != "?tab=posts" {
		t.Errorf("location = %+v", loc)
	}
	if loc.State != "payload" {
		t.Errorf("State = %v, want payload", loc.State)
	}
}

func TestMemoryReplace(t *testing.T) {
	h, _ := NewMemory(MemoryOptions{})
	before := h.Location().Key

	if err := h.Replace(location.Partial{Pathname: "/next"}, nil); err != nil {
		t.Fatal(err)
	}
	if h.Length() != 1 {
		t.Errorf("Length() = %d, want 1", h.Length())
	}
	if h.Location().Pathname != "/next" || h.Action() != ActionReplace {
		t.Errorf("location=%v action=%s", h.Location(), h.Action())
	}
	if h.Location().Key == before {
		t.Error("replace should assign a new key")
	}
}

func TestMemoryGoClampsAndNotifies(t *testing.T) {
	h, _ := NewMemory(MemoryOptions{
		InitialEntries: []location.Input{location.Path("/one"), location.Path("/two")},
	})

	var actions []Action
	h.Listen(func(_ location.Location, a Action) { actions = append(actions, a) })

	if h.CanGo(-5) {
		t.Error("CanGo(-5) should be false")
	}
	if err := h.Go(-5); err != nil {
		t.Fatal(err)
	}
	if h.Index() != 0 {
		t.Errorf("Index() = %d, want 0", h.Index())
	}
	if err := h.GoForward(); err != nil {
		t.Fatal(err)
	}
	if h.Location().Pathname != "/two" {
		t.Errorf("Pathname = %q, want /two", h.Location().Pathname)
	}
	if len(actions) != 2 || actions[0] != ActionPop || actions[1] != ActionPop {
		t.Errorf("actions = %v, want [POP POP]", actions)
	}
}

func TestListenersInOrderAndRemovable(t *testing.T) {
	h, _ := NewMemory(MemoryOptions{})

	var calls []string
	h.Listen(func(location.Location, Action) { calls = append(calls, "a") })
	unlisten := h.Listen(func(location.Location, Action) { calls = append(calls, "b") })
	h.Listen(func(location.Location, Action) { calls = append(calls, "c") })

	_ = h.Push(location.Path("/x"), nil)
	unlisten()
	unlisten()
	_ = h.Push(location.Path("/y"), nil)

	if got := strings.Join(calls, ""); got != "abcac" {
		t.Errorf("calls = %q, want abcac", got)
	}
}

func TestBlockWithConfirmation(t *testing.T) {
	var asked []string
	allow := false
	h, _ := NewMemory(MemoryOptions{
		GetUserConfirmation: func(message string) bool {
			asked = append(asked, message)
			return allow
		},
	})

	unblock := h.Block(func(loc location.Location, action Action) string {
		return fmt.Sprintf("Leave for %s (%s)?", loc.Pathname, action)
	})

	_ = h.Push(location.Path("/away"), nil)
	if h.Location().Pathname != "/" {
		t.Errorf("refused push moved to %q", h.Location().Pathname)
	}

	allow = true
	_ = h.Push(location.Path("/away"), nil)
	if h.Location().Pathname != "/away" {
		t.Errorf("confirmed push stayed at %q", h.Location().Pathname)
	}

	unblock()
	_ = h.Push(location.Path("/free"), nil)

	if len(asked) != 2 || asked[0] != "Leave for /away (PUSH)?" {
		t.Errorf("asked = %v", asked)
	}
}

func TestBlockEmptyMessageAllows(t *testing.T) {
	h, _ := NewMemory(MemoryOptions{
		GetUserConfirmation: func(string) bool { return false },
	})
	h.Block(func(location.Location, Action) string { return "" })

	_ = h.Push(location.Path("/ok"), nil)
	if h.Location().Pathname != "/ok" {
		t.Errorf("Pathname = %q, want /ok", h.Location().Pathname)
	}
}

func TestBlockWithoutConfirmFuncWarnsOnce(t *testing.T) {
	logger, buf := captureLogger()
	h, _ := NewMemory(MemoryOptions{Logger: logger})
	h.Block(func(location.Location, Action) string { return "sure?" })

	_ = h.Push(location.Path("/a"), nil)
	_ = h.Push(location.Path("/b"), nil)

	if h.Location().Pathname != "/b" {
		t.Errorf("Pathname = %q, want /b", h.Location().Pathname)
	}
	if n := strings.Count(buf.String(), "GetUserConfirmation"); n != 1 {
		t.Errorf("warning logged %d times, want 1", n)
	}
}

func TestStaleUnblockKeepsNewerPrompt(t *testing.T) {
	h, _ := NewMemory(MemoryOptions{
		GetUserConfirmation: func(string) bool { return false },
	})
	first := h.Block(func(location.Location, Action) string { return "first" })
	h.Block(func(location.Location, Action) string { return "second" })
	first()

	_ = h.Push(location.Path("/blocked"), nil)
	if h.Location().Pathname != "/" {
		t.Error("the second prompt should still block")
	}
}

// =============================================================================
// Static
// =============================================================================

func TestStaticLocationStripsBasename(t *testing.T) {
	h, err := NewStatic(StaticOptions{
		Basename: "/the-base/",
		Location: location.Path("/the-base/page?x=1"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if h.Basename() != "/the-base" {
		t.Errorf("Basename() = %q", h.Basename())
	}
	loc := h.Location()
	if loc.Pathname != "/page" || loc.Search != "?x=1" || loc.Key != "" {
		t.Errorf("location = %+v", loc)
	}
	if h.Length() != 1 || h.Action() != ActionPop {
		t.Errorf("length=%d action=%s", h.Length(), h.Action())
	}
}

func TestStaticCreateHref(t *testing.T) {
	tests := []struct {
		basename string
		to       location.Input
		want     string
	}{
		{"", location.Path("/foo"), "/foo"},
		{"", location.Path("foo"), "/foo"},
		{"/the-base", location.Path("/foo"), "/the-base/foo"},
		{"/the-base", location.Partial{Pathname: "/foo", Search: "a=1"}, "/the-base/foo?a=1"},
		{"/", location.Path("/foo"), "/foo"},
	}
	for _, tt := range tests {
		h, _ := NewStatic(StaticOptions{Basename: tt.basename})
		if got := h.CreateHref(tt.to); got != tt.want {
			t.Errorf("CreateHref(%v) with basename %q = %q, want %q", tt.to, tt.basename, got, tt.want)
		}
		if strings.HasPrefix(h.CreateHref(tt.to), "//") {
			t.Errorf("CreateHref produced a double slash")
		}
	}
}

func TestStaticMovementErrors(t *testing.T) {
	h, _ := NewStatic(StaticOptions{})

	tests := []struct {
		name string
		fn   func() error
		want string
	}{
		{"go", func() error { return h.Go(1) }, "You cannot go with <StaticRouter>"},
		{"goBack", h.GoBack, "You cannot goBack with <StaticRouter>"},
		{"goForward", h.GoForward, "You cannot goForward with <StaticRouter>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			if !errors.Is(err, ErrStaticNavigation) {
				t.Fatalf("err = %v, want ErrStaticNavigation", err)
			}
			if !rerrors.HasCode(err, "E101") {
				t.Error("err should carry E101")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error() = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestStaticBlockIsNoop(t *testing.T) {
	h, _ := NewStatic(StaticOptions{Context: &StaticContext{}})
	unblock := h.Block(func(location.Location, Action) string { return "never" })
	unblock()

	if err := h.Push(location.Path("/x"), nil); err != nil {
		t.Fatal(err)
	}
	if h.Reporter().State() != Reported {
		t.Error("push should be reported despite the prompt")
	}
}

// =============================================================================
// Reporter
// =============================================================================

func TestReporterPush(t *testing.T) {
	ctx := &StaticContext{}
	h, _ := NewStatic(StaticOptions{Location: location.Path("/"), Context: ctx})

	if h.Reporter().State() != Idle {
		t.Fatalf("State() = %s, want Idle", h.Reporter().State())
	}
	if _, ok := ctx.Redirect(); ok {
		t.Error("fresh context should have no redirect")
	}

	_ = h.Push(location.Partial{Pathname: "/somewhere-else"}, nil)

	if ctx.Action != ActionPush {
		t.Errorf("Action = %s, want PUSH", ctx.Action)
	}
	if ctx.URL != "/somewhere-else" {
		t.Errorf("URL = %q, want /somewhere-else", ctx.URL)
	}
	if ctx.Location == nil || ctx.Location.Pathname != "/somewhere-else" {
		t.Errorf("Location = %v", ctx.Location)
	}
	if h.Location().Pathname != "/" {
		t.Error("a static history never changes its location")
	}
}

func TestReporterEscapesURL(t *testing.T) {
	ctx := &StaticContext{}
	h, _ := NewStatic(StaticOptions{Basename: "/base", Context: ctx})

	if err := h.Push(location.Path("/100%25"), nil); err != nil {
		t.Fatal(err)
	}
	if ctx.URL != "/base/100%25" {
		t.Errorf("URL = %q, want /base/100%%25", ctx.URL)
	}
	if ctx.Location == nil || ctx.Location.Pathname != "/100%" {
		t.Fatalf("Location = %v", ctx.Location)
	}

	// Navigating to the recorded location must not decode it again.
	if err := h.Replace(*ctx.Location, nil); err != nil {
		t.Fatal(err)
	}
	if ctx.Location.Pathname != "/100%" || ctx.URL != "/base/100%25" {
		t.Errorf("after replace: Location = %v, URL = %q", ctx.Location, ctx.URL)
	}
}

func TestCreateHrefEscapesLocations(t *testing.T) {
	h, _ := NewStatic(StaticOptions{})
	tests := []struct {
		to   location.Input
		want string
	}{
		{location.Path("/a%20b"), "/a%20b"},
		{location.Location{Pathname: "/a b", Search: "?q=1"}, "/a%20b?q=1"},
		{location.Location{Pathname: "/100%"}, "/100%25"},
		{location.Location{Pathname: "/a%2Fb"}, "/a%2Fb"},
	}
	for _, tt := range tests {
		if got := h.CreateHref(tt.to); got != tt.want {
			t.Errorf("CreateHref(%#v) = %q, want %q", tt.to, got, tt.want)
		}
	}
}

func TestReporterReplaceWithBasename(t *testing.T) {
	ctx := &StaticContext{}
	h, _ := NewStatic(StaticOptions{
		Basename: "/the-base",
		Location: location.Path("/the-base"),
		Context:  ctx,
	})

	_ = h.Replace(location.Partial{Pathname: "/somewhere-else"}, nil)

	ev, ok := ctx.Redirect()
	if !ok {
		t.Fatal("Redirect() reported nothing")
	}
	if ev.Action != ActionReplace || ev.URL != "/the-base/somewhere-else" {
		t.Errorf("event = %+v", ev)
	}
	if ev.Location.Pathname != "/somewhere-else" {
		t.Errorf("Location.Pathname = %q, want it without basename", ev.Location.Pathname)
	}
}

func TestReporterLastWriteWins(t *testing.T) {
	logger, buf := captureLogger()
	ctx := &StaticContext{}
	h, _ := NewStatic(StaticOptions{Context: ctx, Logger: logger})

	_ = h.Push(location.Path("/first"), nil)
	_ = h.Replace(location.Path("/second"), nil)

	if ctx.Action != ActionReplace || ctx.URL != "/second" {
		t.Errorf("context = %+v, want REPLACE /second", ctx)
	}
	if ctx.Overwrites != 1 {
		t.Errorf("Overwrites = %d, want 1", ctx.Overwrites)
	}
	if !strings.Contains(buf.String(), "overwritten") {
		t.Errorf("expected a debug line for the overwrite, got %q", buf.String())
	}
}

func TestReporterDetach(t *testing.T) {
	ctx := &StaticContext{}
	h, _ := NewStatic(StaticOptions{Context: ctx})
	h.Reporter().Detach()

	_ = h.Push(location.Path("/ignored"), nil)
	if ctx.URL != "" || h.Reporter().State() != Idle {
		t.Errorf("detached reporter recorded %+v", ctx)
	}
}

func TestStaticWithoutContext(t *testing.T) {
	h, _ := NewStatic(StaticOptions{})
	if h.Reporter() != nil {
		t.Error("no context means no reporter")
	}
	if err := h.Push(location.Path("/x"), nil); err != nil {
		t.Errorf("Push() = %v", err)
	}
}

// =============================================================================
// Browser
// =============================================================================

func TestBrowserPushAndPop(t *testing.T) {
	d := &recordingDriver{}
	h, err := NewBrowser(BrowserOptions{
		Basename: "/app",
		Initial:  location.Path("/app/one"),
		Driver:   d,
	})
	if err != nil {
		t.Fatal(err)
	}
	first := h.Location()
	if first.Pathname != "/one" || first.Key == "" {
		t.Fatalf("initial = %+v", first)
	}

	if err := h.Push(location.Path("/two"), nil); err != nil {
		t.Fatal(err)
	}
	if len(d.calls) != 1 || d.calls[0] != "push /app/two" {
		t.Errorf("driver calls = %v", d.calls)
	}
	if h.Length() != 2 || h.Action() != ActionPush {
		t.Errorf("length=%d action=%s", h.Length(), h.Action())
	}

	var popped location.Location
	h.Listen(func(loc location.Location, a Action) {
		if a == ActionPop {
			popped = loc
		}
	})
	if err := h.HandlePop("/app/one", EntryState{Key: first.Key}); err != nil {
		t.Fatal(err)
	}
	if popped.Pathname != "/one" || h.Location().Key != first.Key {
		t.Errorf("popped = %+v", popped)
	}
}

func TestBrowserRefusedPopIsReverted(t *testing.T) {
	d := &recordingDriver{}
	h, _ := NewBrowser(BrowserOptions{
		Initial:             location.Path("/one"),
		Driver:              d,
		GetUserConfirmation: func(string) bool { return false },
	})
	first := h.Location().Key
	_ = h.Push(location.Path("/two"), nil)

	h.Block(func(location.Location, Action) string { return "stay?" })
	if err := h.HandlePop("/one", EntryState{Key: first}); err != nil {
		t.Fatal(err)
	}

	if h.Location().Pathname != "/two" {
		t.Errorf("refused pop moved to %q", h.Location().Pathname)
	}
	if len(d.gos) != 1 || d.gos[0] != 1 {
		t.Errorf("revert = %v, want [1]", d.gos)
	}

	// The client reports the revert as a pop back to /two; it must not prompt again.
	second := h.Location().Key
	var listened []Action
	h.Listen(func(_ location.Location, a Action) { listened = append(listened, a) })
	if err := h.HandlePop("/two", EntryState{Key: second}); err != nil {
		t.Fatal(err)
	}
	if len(listened) != 1 || listened[0] != ActionPop {
		t.Errorf("revert pop notifications = %v, want [POP]", listened)
	}
	if len(d.gos) != 1 {
		t.Errorf("revert pop was reverted again: %v", d.gos)
	}
}

func TestResolveHref(t *testing.T) {
	b, _ := NewBrowser(BrowserOptions{Basename: "/app", Initial: location.Path("/app/")})
	h, _ := NewHash(HashOptions{HashType: HashBang, Basename: "/app", Initial: "#!/app/"})

	tests := []struct {
		name    string
		resolve func(string) location.Path
		href    string
		want    location.Path
	}{
		{"browser", b.ResolveHref, "/app/users/1?tab=2#top", "/users/1?tab=2#top"},
		{"browser encoded", b.ResolveHref, "/app/a%20b", "/a%20b"},
		{"browser outside basename", b.ResolveHref, "/other", "/other"},
		{"hash", h.ResolveHref, "#!/app/users/1", "/users/1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resolve(tt.href); got != tt.want {
				t.Errorf("ResolveHref(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}

	for _, to := range []string{"/users/1?tab=2", "/"} {
		if got := b.ResolveHref(b.CreateHref(location.Path(to))); string(got) != to {
			t.Errorf("browser round trip %q -> %q", to, got)
		}
		if got := h.ResolveHref(h.CreateHref(location.Path(to))); string(got) != to {
			t.Errorf("hash round trip %q -> %q", to, got)
		}
	}
}

func TestBrowserForceRefresh(t *testing.T) {
	d := &recordingDriver{}
	h, _ := NewBrowser(BrowserOptions{ForceRefresh: true, Driver: d})

	_ = h.Push(location.Path("/reload-me"), nil)
	if len(d.calls) != 1 || d.calls[0] != "reload /reload-me" {
		t.Errorf("driver calls = %v", d.calls)
	}
	if h.Location().Pathname != "/" {
		t.Error("a forced refresh does not change the location before the reload")
	}
}

func TestBrowserBasenameMismatchWarns(t *testing.T) {
	logger, buf := captureLogger()
	_, err := NewBrowser(BrowserOptions{
		Basename: "/app",
		Initial:  location.Path("/elsewhere"),
		Logger:   logger,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "basename") {
		t.Errorf("expected a basename warning, got %q", buf.String())
	}
}

// =============================================================================
// Hash
// =============================================================================

func TestHashCreateHref(t *testing.T) {
	tests := []struct {
		hashType HashType
		basename string
		want     string
	}{
		{HashSlash, "", "#/about"},
		{HashNoSlash, "", "#about"},
		{HashBang, "", "#!/about"},
		{HashSlash, "/app", "#/app/about"},
	}
	for _, tt := range tests {
		h, err := NewHash(HashOptions{HashType: tt.hashType, Basename: tt.basename})
		if err != nil {
			t.Fatal(err)
		}
		if got := h.CreateHref(location.Path("/about")); got != tt.want {
			t.Errorf("%s/%q: CreateHref = %q, want %q", tt.hashType, tt.basename, got, tt.want)
		}
	}
}

func TestHashInitial(t *testing.T) {
	h, err := NewHash(HashOptions{HashType: HashBang, Initial: "#!/docs?v=2"})
	if err != nil {
		t.Fatal(err)
	}
	loc := h.Location()
	if loc.Pathname != "/docs" || loc.Search != "?v=2" || loc.Key != "" {
		t.Errorf("location = %+v", loc)
	}
}

func TestHashPushSamePathIsIgnored(t *testing.T) {
	logger, buf := captureLogger()
	d := &recordingDriver{}
	h, _ := NewHash(HashOptions{Initial: "#/home", Driver: d, Logger: logger})

	_ = h.Push(location.Path("/about"), nil)
	_ = h.Push(location.Path("/about"), nil)

	if len(d.calls) != 1 || d.calls[0] != "push #/about" {
		t.Errorf("driver calls = %v", d.calls)
	}
	if h.Length() != 2 {
		t.Errorf("Length() = %d, want 2", h.Length())
	}
	if !strings.Contains(buf.String(), "same path") {
		t.Errorf("expected a same-path warning, got %q", buf.String())
	}
}

func TestHashStateIsDropped(t *testing.T) {
	logger, buf := captureLogger()
	h, _ := NewHash(HashOptions{Logger: logger})

	_ = h.Push(location.Path("/x"), map[string]int{"a": 1})
	if h.Location().State != nil {
		t.Errorf("State = %v, want nil", h.Location().State)
	}
	if !strings.Contains(buf.String(), "cannot push state") {
		t.Errorf("expected a state warning, got %q", buf.String())
	}
}

func TestHashPop(t *testing.T) {
	d := &recordingDriver{}
	h, _ := NewHash(HashOptions{Initial: "#/one", Driver: d})
	_ = h.Push(location.Path("/two"), nil)

	var n int
	h.Listen(func(location.Location, Action) { n++ })

	_ = h.HandlePop("#/two")
	if n != 0 {
		t.Error("a pop to the current path should be ignored")
	}
	_ = h.HandlePop("#/one")
	if n != 1 || h.Location().Pathname != "/one" || h.Action() != ActionPop {
		t.Errorf("n=%d location=%v action=%s", n, h.Location(), h.Action())
	}
}
