package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sessamekesh/waygate/pkg/sessioncrypto"
	"github.com/spf13/pflag"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile(%q) error = %v", path, err)
	}
	return path
}

func keyPair(t *testing.T) (clientPublic, serverSecret string) {
	t.Helper()
	keys, err := sessioncrypto.GenerateKeySet()
	if err != nil {
		t.Fatalf("GenerateKeySet() error = %v", err)
	}
	server := keys.Server()
	return sessioncrypto.EncodeKey(server.ClientPublicKey), sessioncrypto.EncodeKey(server.ServerSecretKey)
}

func TestDefaults(t *testing.T) {
	c, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Bind != "0.0.0.0:10901" || c.Endpoint != "/" || c.Store.Backend != "memory" || c.Identity.Mode != "steam" {
		t.Fatalf("defaults = %+v", c)
	}
}

func TestFileEnvAndFlags(t *testing.T) {
	clientPublic, serverSecret := keyPair(t)
	path := writeFile(t, "waygate.yaml", strings.Join([]string{
		"bind: 127.0.0.1:1",
		"client_public_key: " + clientPublic,
		"server_secret_key: " + serverSecret,
		"identity:",
		"  mode: trust",
		"bans:",
		"  - \"76561197960287930\"",
	}, "\n"))

	t.Setenv("WAYGATE_STORE_BACKEND", "redis")
	t.Setenv("WAYGATE_REDIS_URL", "redis://cache:6379/1")

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("bind", "", "")
	flags.Int("max-connections", 0, "")
	if err := flags.Parse([]string{"--max-connections=12"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	c, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Bind != "127.0.0.1:1" {
		t.Fatalf("Bind = %q, want value from file", c.Bind)
	}
	if c.MaxConnections != 12 {
		t.Fatalf("MaxConnections = %d, want value from flag", c.MaxConnections)
	}
	if c.Store.Backend != "redis" || c.Redis.URL != "redis://cache:6379/1" {
		t.Fatalf("store = %+v, redis = %+v", c.Store, c.Redis)
	}
	if len(c.Bans) != 1 || c.Bans[0] != "76561197960287930" {
		t.Fatalf("Bans = %v", c.Bans)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if sc := c.StoreConfig(); sc.RedisURL != c.Redis.URL || len(sc.Bans) != 1 {
		t.Fatalf("StoreConfig() = %+v", sc)
	}
}

func TestValidateReportsEverything(t *testing.T) {
	c := &Config{Endpoint: "ws"}
	c.Store.Backend = "postgres"
	c.Identity.Mode = "steam"

	err := c.Validate()
	if err == nil {
		t.Fatal("Validate() succeeded")
	}
	for _, want := range []string{"client public key", "postgres", "steam_api_key", "endpoint"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q does not mention %q", err, want)
		}
	}
}

func TestLoadAnnouncements(t *testing.T) {
	path := writeFile(t, "announcements.toml", `
[[announcements]]
title = "Welcome"
body = "Servers are up."
published_at = 1700000000

[[announcements]]
title = "Maintenance"
body = "Tuesday"
`)

	got, err := LoadAnnouncements(path)
	if err != nil {
		t.Fatalf("LoadAnnouncements() error = %v", err)
	}
	if len(got) != 2 || got[0].Title != "Welcome" || got[0].PublishedAt != 1700000000 || got[1].Body != "Tuesday" {
		t.Fatalf("LoadAnnouncements() = %+v", got)
	}

	if none, err := LoadAnnouncements(""); err != nil || none != nil {
		t.Fatalf("LoadAnnouncements(\"\") = (%v, %v)", none, err)
	}
}
