package history

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/vrouter/pkg/location"
)

// HashType selects how paths are written into the URL hash.
type HashType string

const (
	// HashSlash writes "#/path". It is the default.
	HashSlash HashType = "slash"

	// HashNoSlash writes "#path".
	HashNoSlash HashType = "noslash"

	// HashBang writes "#!/path".
	HashBang HashType = "hashbang"
)

// HashOptions configures a HashHistory.
type HashOptions struct {
	// Basename is prepended to paths inside the hash.
	Basename string

	// HashType selects the hash encoding. Defaults to HashSlash.
	HashType HashType

	// GetUserConfirmation resolves prompts installed with Block.
	GetUserConfirmation ConfirmFunc

	// Initial is the client's current hash, with or without the leading "#".
	Initial string

	// Driver sends commands to the client. Without one, commands are dropped.
	Driver Driver

	// Logger receives warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// HashHistory mirrors window.location.hash for a connected client.
// Hash entries carry no keys and no state.
type HashHistory struct {
	*remoteHistory
}

func hashCoders(t HashType) (encode, decode func(string) string) {
	switch t {
	case HashNoSlash:
		return location.StripLeadingSlash, location.AddLeadingSlash
	case HashBang:
		encode = func(p string) string {
			if strings.HasPrefix(p, "!") {
				return p
			}
			return "!/" + location.StripLeadingSlash(p)
		}
		decode = func(p string) string {
			return location.AddLeadingSlash(strings.TrimPrefix(p, "!"))
		}
		return encode, decode
	default:
		return location.AddLeadingSlash, location.AddLeadingSlash
	}
}

// NewHash creates a hash history.
func NewHash(opts HashOptions) (*HashHistory, error) {
	encode, decode := hashCoders(opts.HashType)
	codec := pathCodec{
		href: func(basename, path string) string {
			return "#" + encode(basename+path)
		},
		decode: func(raw string) string {
			return decode(strings.TrimPrefix(raw, "#"))
		},
	}

	h := &HashHistory{
		remoteHistory: newRemote(opts.Basename, codec, opts.Driver, opts.GetUserConfirmation, opts.Logger),
	}
	h.id = location.CreatePath

	if err := h.init(opts.Initial); err != nil {
		return nil, err
	}
	h.ids = []string{h.id(h.location)}
	return h, nil
}

// Push implements History. Pushing the current path again is ignored.
func (h *HashHistory) Push(to location.Input, state any) error {
	return h.navigate(to, state, ActionPush)
}

// Replace implements History.
func (h *HashHistory) Replace(to location.Input, state any) error {
	return h.navigate(to, state, ActionReplace)
}

func (h *HashHistory) navigate(to location.Input, state any, action Action) error {
	if state != nil || to.AsPartial().State != nil {
		h.logger.Warn("hash history cannot push state; it is ignored")
	}

	current := h.Location()
	loc, err := location.Create(to, &current)
	if err != nil {
		return err
	}
	loc.State = nil
	loc.Key = ""

	if !h.tm.confirmTransitionTo(loc, action) {
		return nil
	}

	href := h.CreateHref(loc)
	if action == ActionPush {
		if location.CreatePath(loc) == location.CreatePath(current) {
			h.logger.Warn("hash history cannot PUSH the same path; a new entry will not be added to the history stack",
				"path", location.CreatePath(loc))
			return nil
		}
		err = h.driver.PushState(href, nil)
	} else {
		err = h.driver.ReplaceState(href, nil)
	}
	if err != nil {
		return err
	}

	h.commit(loc, action)
	return nil
}

// HandlePop applies a hash change the client reported. Changes that do not
// move to a different path are ignored.
func (h *HashHistory) HandlePop(hash string) error {
	loc, err := location.Normalize(location.Path(h.codec.decode(hash)), h.basename)
	if err != nil {
		return err
	}
	if location.CreatePath(loc) == location.CreatePath(h.Location()) {
		return nil
	}
	return h.pop(loc)
}
