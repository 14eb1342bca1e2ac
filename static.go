package vrouter

import (
	"bytes"
	"io/fs"
	"net/http"
	"regexp"
	"strings"

	"github.com/vango-dev/vrouter/pkg/location"
	"github.com/vango-dev/vrouter/pkg/routepath"
)

// Assets returns the static asset tree and the site path it is served
// under, without the basename. fsys is nil when no Static.Dir is set.
func (a *App) Assets() (fsys fs.FS, prefix string) {
	if a.assets == nil {
		return nil, ""
	}
	return a.assets, location.AddLeadingSlash(location.NormalizeBasename(a.config.Static.Prefix))
}

// assetKey maps a request URL onto a file in the asset tree. The URL is
// normalized like a route target; the basename and then the static prefix
// must each cover whole path segments.
func (a *App) assetKey(url string) (string, bool) {
	if a.assets == nil {
		return "", false
	}
	loc, err := location.Normalize(location.Path(url), "")
	if err != nil {
		return "", false
	}
	for _, prefix := range []string{a.config.Basename, a.config.Static.Prefix} {
		var ok bool
		if loc, ok = stripSegments(prefix, loc); !ok {
			return "", false
		}
	}

	key, err := routepath.Clean(loc.Pathname)
	if err != nil || key == "" || !fs.ValidPath(key) {
		return "", false
	}
	return key, true
}

// stripSegments strips prefix from l when it is a whole-segment prefix of
// the pathname. An empty prefix always matches.
func stripSegments(prefix string, l location.Location) (location.Location, bool) {
	prefix = location.NormalizeBasename(prefix)
	if prefix == "" {
		return l, true
	}
	if l.Pathname != prefix && !strings.HasPrefix(l.Pathname, prefix+"/") {
		return l, false
	}
	return location.StripBasename(prefix, l), true
}

// serveAsset writes the asset the request names. It reports false, writing
// nothing, when the request does not name an asset file.
func (a *App) serveAsset(w http.ResponseWriter, r *http.Request) bool {
	key, ok := a.assetKey(r.URL.RequestURI())
	if !ok {
		return false
	}
	info, err := fs.Stat(a.assets, key)
	if err != nil || info.IsDir() {
		return false
	}
	data, err := fs.ReadFile(a.assets, key)
	if err != nil {
		a.logger.Error("read asset", "key", key, "error", err)
		return false
	}

	if v := a.config.Static.CacheControl.header(key); v != "" {
		w.Header().Set("Cache-Control", v)
	}
	for k, v := range a.config.Static.Headers {
		w.Header().Set(k, v)
	}
	http.ServeContent(w, r, key, info.ModTime(), bytes.NewReader(data))
	return true
}

// fingerprinted matches names such as app.a1b2c3d4.css.
var fingerprinted = regexp.MustCompile(`[^/]\.[0-9a-fA-F]{8,}\.[^./]+$`)

// header returns the Cache-Control value for the asset at key.
func (s CacheControlStrategy) header(key string) string {
	switch s {
	case CacheControlNone:
		return "no-store, no-cache, must-revalidate"
	case CacheControlProduction:
		if fingerprinted.MatchString(key) {
			return "public, max-age=31536000, immutable"
		}
		return "public, max-age=3600, must-revalidate"
	}
	return ""
}
