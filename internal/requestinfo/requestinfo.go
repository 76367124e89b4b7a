//
//  internal/requestinfo/requestinfo.go
//
//  Lightweight types and helpers that collect per-request metadata
//  (user-agent fingerprint, IP + geolocation, URL, referrer, and
//  timestamp).  These structs are inert.  They contain no pointers to
//  database handles or large buffers, so they are safe to log or
//  JSON-encode.  The partnership component persists a snapshot of this
//  struct as its analytics event.
//
//  Dependencies
//  • github.com/avct/uasurfer          (UA parsing)
//  • github.com/oschwald/geoip2-golang (MaxMind lookup)
//

package requestinfo

import (
	"context"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"

	"github.com/yanizio/summit/internal/cache"
)

//
//  -----------------------------
//  Struct definitions
//  -----------------------------
//

// UA holds the parsed user-agent properties.
type UA struct {
	Raw         string // Entire User-Agent header
	Browser     string // "Chrome", "Firefox", "Safari", etc.
	Version     string // "124.0.6367"
	OS          string // "macOS", "Windows", "Android", "iOS", etc.
	OSVersion   string // "14.5", "11", "10.0"
	Device      string // "Desktop", "Phone", "Tablet", "TV", ...
	Platform    string // "Mac", "Windows", "Linux", "iPad", "iPhone", ...
	IsBot       bool   // True if UA matches crawler signatures
	PrimaryLang string // First tag from Accept-Language ("en", "es", ...)
}

// Geo holds IP-based geolocation hints.
// These are best-effort and may be empty if the DB has no match.
type Geo struct {
	IP         net.IP // Original client address (not X-Forwarded-For chain)
	CountryISO string // "US", "CA", "FR", ...
	City       string // "Chicago", "Paris", ...
}

// RequestInfo is stored in the request context by the Enrich middleware
// and is therefore visible to every component handler.
type RequestInfo struct {
	UA        UA
	Geo       Geo
	URL       *url.URL // Pointer copy, safe to dereference read-only
	Referrer  string   // Referer header, verbatim
	Timestamp time.Time
}

//
//  -----------------------------
//  Package-level state
//  -----------------------------
//

// geoReader is a singleton MaxMind handle.  It is safe for concurrent
// reads, which is all we ever perform.  geoCache memoises lookups per
// IP string; entries are tiny, so a few thousand is plenty.
var (
	geoReader *geoip2.Reader
	geoCache  = cache.New(4096)
)

// InitGeo opens the GeoLite2-City database at startup.  An empty path
// or an open failure leaves geo enrichment disabled; lookups then return
// the bare IP.
func InitGeo(dbPath string) error {
	if dbPath == "" {
		return nil
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	return nil
}

//
//  -----------------------------
//  Public helper: FromContext
//  -----------------------------
//

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer previously stored by Enrich.
// It returns nil if the middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

//
//  -----------------------------
//  Internal helpers
//  -----------------------------
//

// parseUA converts a raw header into our UA struct using uasurfer.
func parseUA(uaHeader, acceptLang string) UA {
	u := uasurfer.Parse(uaHeader)

	// Browser family string
	br := strings.TrimPrefix(u.Browser.Name.String(), "Browser")

	// OS name and version
	osName := strings.TrimPrefix(u.OS.Name.String(), "OS")
	if osName == "MacOSX" {
		osName = "macOS"
	}

	return UA{
		Raw:         uaHeader,
		Browser:     br,
		Version:     trimVersion(u.Browser.Version),
		OS:          osName,
		OSVersion:   trimVersion(u.OS.Version),
		Device:      deviceTypeToString(u.DeviceType),
		Platform:    strings.TrimPrefix(u.OS.Platform.String(), "Platform"),
		IsBot:       isBot(u),
		PrimaryLang: primaryLang(acceptLang),
	}
}

// isBot folds the three bot signals uasurfer exposes into one flag.
func isBot(u *uasurfer.UserAgent) bool {
	return u.DeviceType == uasurfer.DeviceBot ||
		u.Browser.Name == uasurfer.BrowserBot ||
		u.OS.Name == uasurfer.OSBot
}

// trimVersion builds "major.minor.patch" and removes trailing ".0".
func trimVersion(v uasurfer.Version) string {
	out := strings.TrimSuffix(
		strings.TrimSuffix(
			strings.TrimSuffix(
				strings.Join([]string{
					strconv.Itoa(v.Major),
					strconv.Itoa(v.Minor),
					strconv.Itoa(v.Patch),
				}, "."),
				".0",
			), ".0",
		), ".0",
	)
	if out == "" {
		return "0"
	}
	return out
}

// deviceTypeToString maps uasurfer.DeviceType to a user-friendly string.
func deviceTypeToString(dt uasurfer.DeviceType) string {
	switch dt {
	case uasurfer.DeviceComputer:
		return "Desktop"
	case uasurfer.DevicePhone:
		return "Phone"
	case uasurfer.DeviceTablet:
		return "Tablet"
	case uasurfer.DeviceConsole:
		return "Console"
	case uasurfer.DeviceWearable:
		return "Wearable"
	case uasurfer.DeviceTV:
		return "TV"
	case uasurfer.DeviceBot:
		return "Bot"
	default:
		return "Unknown"
	}
}

// primaryLang extracts the first language subtag before any ";q=" rule.
func primaryLang(al string) string {
	if al == "" {
		return ""
	}
	parts := strings.Split(al, ",")
	tag := strings.TrimSpace(parts[0])
	if i := strings.Index(tag, ";"); i != -1 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}

// lookupGeo returns best-effort Geo data using the global reader.  Hits
// are memoised in geoCache keyed by the IP's string form.
func lookupGeo(ip net.IP) Geo {
	if geoReader == nil || ip == nil {
		return Geo{IP: ip}
	}

	key := ip.String()
	if v, ok := geoCache.Get(key); ok {
		g := v.(Geo)
		g.IP = ip
		return g
	}

	rec, err := geoReader.City(ip)
	if err != nil {
		return Geo{IP: ip}
	}
	g := Geo{
		IP:         ip,
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
	geoCache.Add(key, g)
	return g
}
