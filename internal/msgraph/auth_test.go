package msgraph

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestTokenCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth", "msgraph_tokens.json")

	tok, err := readToken(path)
	if err != nil || tok != nil {
		t.Fatalf("readToken without file = %v, %v; want nil, nil", tok, err)
	}

	want := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	if err := writeToken(path, want); err != nil {
		t.Fatalf("writeToken: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("token file missing: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("token file mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := readToken(path)
	if err != nil {
		t.Fatalf("readToken: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken || !got.Expiry.Equal(want.Expiry) {
		t.Errorf("readToken = %+v, want %+v", got, want)
	}
}

func TestReadTokenCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msgraph_tokens.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := readToken(path); err == nil {
		t.Error("expected error for corrupt token file")
	}
}

func TestTokenFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := tokenFilePath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".ctt", "auth", "msgraph_tokens.json"); got != want {
		t.Errorf("tokenFilePath = %q, want %q", got, want)
	}
}

type staticSource struct{ tok *oauth2.Token }

func (s staticSource) Token() (*oauth2.Token, error) { return s.tok, nil }

func TestCachingTokenSourceWritesOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msgraph_tokens.json")

	same := &cachingTokenSource{ts: staticSource{&oauth2.Token{AccessToken: "a"}}, path: path, last: "a"}
	if _, err := same.Token(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("unchanged token was written: %v", err)
	}

	refreshed := &cachingTokenSource{ts: staticSource{&oauth2.Token{AccessToken: "b"}}, path: path, last: "a"}
	if _, err := refreshed.Token(); err != nil {
		t.Fatal(err)
	}
	got, err := readToken(path)
	if err != nil || got == nil || got.AccessToken != "b" {
		t.Errorf("cached token = %v, %v; want access token b", got, err)
	}
}

func TestOAuth2ConfigUsesTenant(t *testing.T) {
	cfg := oauth2Config("contoso", "client-1")
	if cfg.ClientID != "client-1" {
		t.Errorf("ClientID = %q", cfg.ClientID)
	}
	if cfg.Endpoint.DeviceAuthURL != "https://login.microsoftonline.com/contoso/oauth2/v2.0/devicecode" {
		t.Errorf("DeviceAuthURL = %q", cfg.Endpoint.DeviceAuthURL)
	}
	if cfg.Endpoint.TokenURL != "https://login.microsoftonline.com/contoso/oauth2/v2.0/token" {
		t.Errorf("TokenURL = %q", cfg.Endpoint.TokenURL)
	}
}
