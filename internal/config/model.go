// internal/config/model.go
//
// Typed configuration model for Summit.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                     – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `SUMMIT_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *after* unmarshalling, so secrets stay out of
// flat files and git history while the model only ever holds plain
// strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.
package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Database section
//

// Database holds the DSN template and its secret.  The template keeps
// exactly one %s verb where the password goes, so operators can tweak
// host, port, or flags without touching Vault.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password" validate:"required"`
}

//
// Admin section
//

// Admin configures the server-side admin gate.  PasswordHash is a
// bcrypt hash; the plaintext never exists in configuration.  The
// session secret signs the admin cookie.
type Admin struct {
	PasswordHash  string        `koanf:"password_hash"  validate:"required"`
	SessionSecret string        `koanf:"session_secret" validate:"required"`
	SessionTTL    time.Duration `koanf:"session_ttl"`
}

//
// GeoIP section
//

// GeoIP points at an optional MaxMind database used to enrich the
// partnership analytics events.  Empty path disables geo lookups.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or SUMMIT_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // SUMMIT_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Admin    Admin    `koanf:"admin"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
