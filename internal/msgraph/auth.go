package msgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/campus-timetable/internal/storage"
)

var requiredScopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"offline_access",
}

func msEndpoint(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// tokenFilePath returns where the Graph token is cached (~/.ctt/auth).
func tokenFilePath() (string, error) {
	base, err := storage.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "auth", "msgraph_tokens.json"), nil
}

func oauth2Config(tenantID, clientID string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: clientID,
		Scopes:   requiredScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: msEndpoint(tenantID, "devicecode"),
			TokenURL:      msEndpoint(tenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// readToken returns the cached token at path, or nil when there is none.
func readToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reading token cache: %w", err)
	}
	tok := new(oauth2.Token)
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, fmt.Errorf("token cache %s is corrupt, delete it to sign in again: %w", path, err)
	}
	return tok, nil
}

// writeToken caches tok at path, readable by the owner only.
func writeToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	return storage.WriteFileAtomic(path, data, 0o600)
}

// deviceLogin runs the device code flow, printing the sign-in steps to prompt.
func deviceLogin(ctx context.Context, cfg *oauth2.Config, prompt io.Writer) (*oauth2.Token, error) {
	code, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("requesting device code: %w", err)
	}
	fmt.Fprintf(prompt, "\n请在浏览器中打开 %s 并输入代码 %s 登录 Outlook。\n\n", code.VerificationURI, code.UserCode)

	tok, err := cfg.DeviceAccessToken(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("device sign-in: %w", err)
	}
	return tok, nil
}

// Authenticate returns a Graph token and the config that refreshes it. A
// cached token is reused, refreshed by the oauth2 token source if expired;
// otherwise the user signs in through the device code flow. Any new token is
// written back to the cache.
func Authenticate(ctx context.Context, tenantID, clientID string, prompt io.Writer, log zerolog.Logger) (*oauth2.Token, *oauth2.Config, error) {
	cfg := oauth2Config(tenantID, clientID)
	path, err := tokenFilePath()
	if err != nil {
		return nil, nil, err
	}

	cached, err := readToken(path)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring token cache")
	}

	var tok *oauth2.Token
	if cached != nil {
		tok, err = cfg.TokenSource(ctx, cached).Token()
		if err != nil {
			log.Info().Err(err).Msg("cached token unusable, signing in again")
			tok = nil
		}
	}
	if tok == nil {
		if tok, err = deviceLogin(ctx, cfg, prompt); err != nil {
			return nil, nil, err
		}
	}

	if cached == nil || tok.AccessToken != cached.AccessToken {
		if err := writeToken(path, tok); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("could not cache token")
		}
	}
	return tok, cfg, nil
}
