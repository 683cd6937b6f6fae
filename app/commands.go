package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/darkmode/app/enum"
	"github.com/umputun/darkmode/app/pref"
	"github.com/umputun/darkmode/app/server"
	"github.com/umputun/darkmode/app/store"
)

// PrefOptions configures the preference controller, shared by all commands.
type PrefOptions struct {
	Key            string `long:"key" env:"KEY" default:"darkMode" description:"storage key of the preference"`
	ClassName      string `long:"class" env:"CLASS" default:"dark-mode" description:"class applied to the page body"`
	DisabledPolicy string `long:"disabled-policy" env:"DISABLED_POLICY" default:"write-disabled" choice:"write-disabled" choice:"write-null" choice:"remove-key" description:"what to store when dark mode is switched off"` //nolint:lll
}

func (o PrefOptions) config() (pref.Config, error) {
	policy, err := enum.ParseDisabledPolicy(o.DisabledPolicy)
	if err != nil {
		return pref.Config{}, err
	}
	return pref.Config{Key: o.Key, ClassName: o.ClassName, DisabledPolicy: policy}, nil
}

// ServerCmd implements the server subcommand
type ServerCmd struct {
	DB string `short:"d" long:"db" env:"DARKMODE_DB" default:"darkmode.db" description:"database URL (sqlite file or postgres://...)"`

	Server struct {
		Address        string        `long:"address" env:"ADDRESS" default:":8080" description:"server listen address"`
		ReadTimeout    time.Duration `long:"read-timeout" env:"READ_TIMEOUT" default:"5s" description:"read timeout"`
		WriteTimeout   time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" default:"30s" description:"write timeout"`
		IdleTimeout    time.Duration `long:"idle-timeout" env:"IDLE_TIMEOUT" default:"60s" description:"idle timeout"`
		BaseURL        string        `long:"base-url" env:"BASE_URL" description:"base URL path for reverse proxy (e.g., /prefs)"`
		SecureCookies  bool          `long:"secure-cookies" env:"SECURE_COOKIES" description:"mark client cookie as secure (https only)"`
		RequestsPerSec int64         `long:"rps" env:"RPS" default:"1000" description:"max requests per second"`
	} `group:"server" namespace:"server" env-namespace:"DARKMODE_SERVER"`

	Cache struct {
		Size int `long:"size" env:"SIZE" default:"10000" description:"preference cache size, 0 disables cache"`
	} `group:"cache" namespace:"cache" env-namespace:"DARKMODE_CACHE"`

	Pref PrefOptions `group:"pref" namespace:"pref" env-namespace:"DARKMODE_PREF"`

	Debug bool `long:"dbg" env:"DEBUG" description:"debug mode"`

	ctx    context.Context
	cancel context.CancelFunc
}

// Execute runs the server command
func (s *ServerCmd) Execute(_ []string) error {
	setupLogs(s.Debug)

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	if s.ctx == nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
		signals(s.cancel)
	}

	return s.run(s.ctx)
}

func (s *ServerCmd) run(ctx context.Context) error {
	baseURL, err := validateBaseURL(s.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	prefCfg, err := s.Pref.config()
	if err != nil {
		return fmt.Errorf("invalid preference options: %w", err)
	}

	log.Printf("[INFO] starting darkmode server on %s", s.Server.Address)
	if baseURL != "" {
		log.Printf("[INFO] base URL: %s", baseURL)
	}
	log.Printf("[INFO] preference key %q, class %q, disabled policy %s",
		prefCfg.Key, prefCfg.ClassName, prefCfg.DisabledPolicy)

	kvStore, err := newStore(s.DB, s.Cache.Size)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer kvStore.Close()

	srv, err := server.New(kvStore, server.Config{
		Address:        s.Server.Address,
		ReadTimeout:    s.Server.ReadTimeout,
		WriteTimeout:   s.Server.WriteTimeout,
		IdleTimeout:    s.Server.IdleTimeout,
		Version:        revision,
		BaseURL:        baseURL,
		SecureCookies:  s.Server.SecureCookies,
		RequestsPerSec: s.Server.RequestsPerSec,
		Pref:           prefCfg,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// PrefCmd implements the pref subcommand
type PrefCmd struct {
	DB     string      `short:"d" long:"db" env:"DARKMODE_DB" default:"darkmode.db" description:"database URL (sqlite file or postgres://...)"`
	Client string      `long:"client" env:"DARKMODE_CLIENT" required:"true" description:"client id (uuid from the darkmode-client cookie)"`
	Set    string      `long:"set" choice:"enabled" choice:"disabled" description:"new mode, prints the current one if omitted"`
	Toggle bool        `long:"toggle" description:"flip the current mode"`
	Pref   PrefOptions `group:"pref" namespace:"pref" env-namespace:"DARKMODE_PREF"`
	Debug  bool        `long:"dbg" env:"DEBUG" description:"debug mode"`

	out io.Writer
}

// Execute runs the pref command
func (p *PrefCmd) Execute(_ []string) error {
	setupLogs(p.Debug)
	out := p.out
	if out == nil {
		out = os.Stdout
	}

	if p.Set != "" && p.Toggle {
		return fmt.Errorf("--set and --toggle are mutually exclusive")
	}
	clientID, err := uuid.Parse(strings.TrimSpace(p.Client))
	if err != nil {
		return fmt.Errorf("invalid client id %q: %w", p.Client, err)
	}
	prefCfg, err := p.Pref.config()
	if err != nil {
		return fmt.Errorf("invalid preference options: %w", err)
	}

	kvStore, err := store.New(p.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer kvStore.Close()

	ctx := context.Background()
	page := &pref.Page{}
	ctl, err := pref.New(page, page, store.Scope(kvStore, clientID.String()), prefCfg)
	if err != nil {
		return fmt.Errorf("failed to make controller: %w", err)
	}
	if err := ctl.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to read preference: %w", err)
	}

	if p.Set != "" || p.Toggle {
		mode := ctl.Mode().Toggle()
		if p.Set != "" {
			if mode, err = enum.ParseMode(p.Set); err != nil {
				return fmt.Errorf("invalid mode: %w", err)
			}
		}
		if err := ctl.Set(ctx, mode); err != nil {
			return fmt.Errorf("failed to set preference: %w", err)
		}
		log.Printf("[INFO] dark mode %s for %s", mode, clientID)
	}

	_, _ = fmt.Fprintln(out, ctl.Mode())
	return nil
}

// newStore opens the database store, wrapped with a cache when cacheSize > 0.
func newStore(dbURL string, cacheSize int) (store.Interface, error) {
	kv, err := store.New(dbURL)
	if err != nil {
		return nil, err
	}
	if cacheSize <= 0 {
		return kv, nil
	}
	cached, err := store.NewCached(kv, cacheSize)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	log.Printf("[DEBUG] preference cache enabled, %d keys", cacheSize)
	return cached, nil
}

// validateBaseURL normalizes base URL: must start with "/", trailing slash is dropped, "/" means none.
func validateBaseURL(baseURL string) (string, error) {
	if baseURL == "" {
		return "", nil
	}
	if !strings.HasPrefix(baseURL, "/") {
		return "", fmt.Errorf("base URL must start with /, got %q", baseURL)
	}
	return strings.TrimRight(baseURL, "/"), nil
}
