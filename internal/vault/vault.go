// internal/vault/vault.go
//
// Vault client wrapper for Summit.
//
// Context
// -------
//   - Wraps the HashiCorp Vault Go SDK behind the one operation the
//     config loader needs: resolving a `mount/path#key` reference to a
//     KV-v2 secret value.
//   - Resolved values are cached per reference for the process lifetime;
//     configuration is read once at boot and on explicit Reload() only.
//
// Environment expectations
// ------------------------
//   - VAULT_ADDR   – scheme and host of the Vault server.
//   - VAULT_TOKEN  – initial token (falls back to ~/.vault-token).
package vault

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	vault "github.com/hashicorp/vault/api"
)

// Client is safe for concurrent use.  Zero value is invalid; construct
// with New.
type Client struct {
	api   *vault.Client
	logFn func(string, ...any)

	cacheMu sync.RWMutex
	cache   map[string]string // "mount/path#key" → value
}

// New constructs a Vault client from the environment.
func New(ctx context.Context, logFn func(string, ...any)) (*Client, error) {
	if logFn == nil {
		logFn = func(string, ...any) {}
	}

	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}

	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	logFn("vault client ready (addr=%s)", cfg.Address)
	return &Client{
		api:   apiCli,
		logFn: logFn,
		cache: make(map[string]string),
	}, nil
}

// Resolve fetches the value behind a `mount/path#key` reference, e.g.
// "secret/summit/prod#db_password".  The first path segment is the KV-v2
// mount; the remainder is the secret path.
func (c *Client) Resolve(ctx context.Context, ref string) (string, error) {
	c.cacheMu.RLock()
	if v, ok := c.cache[ref]; ok {
		c.cacheMu.RUnlock()
		return v, nil
	}
	c.cacheMu.RUnlock()

	path, key, ok := strings.Cut(ref, "#")
	if !ok {
		return "", fmt.Errorf("vault ref %q: missing #key suffix", ref)
	}
	mount, secretPath, ok := strings.Cut(path, "/")
	if !ok {
		return "", fmt.Errorf("vault ref %q: missing mount prefix", ref)
	}

	sec, err := c.api.KVv2(mount).Get(ctx, secretPath)
	if err != nil {
		return "", fmt.Errorf("vault read %s: %w", path, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("vault read %s: key %q absent", path, key)
	}
	val, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("vault read %s: key %q is not a string", path, key)
	}

	c.cacheMu.Lock()
	c.cache[ref] = val
	c.cacheMu.Unlock()

	c.logFn("vault secret resolved (path=%s key=%s)", path, key)
	return val, nil
}
