package gdrive

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"wordtrack/internal/config"
)

// Scopes are the OAuth scopes wordtrack requests. Access is read-only.
var Scopes = []string{drive.DriveReadonlyScope}

// manualRedirectURI never loads; the user copies the URL from the browser.
const manualRedirectURI = "http://localhost:1"

// LoadClientConfig reads the OAuth client secret downloaded from the
// Google Cloud console.
func LoadClientConfig(credentialsPath string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading client credentials: %w", err)
	}
	cfg, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing client credentials %s: %w", credentialsPath, err)
	}
	return cfg, nil
}

// ReadToken loads a saved token. A missing file is reported as
// AuthRequiredError.
func ReadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &AuthRequiredError{TokenPath: path, Cause: err}
		}
		return nil, fmt.Errorf("reading token: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parsing token %s: %w", path, err)
	}
	if tok.RefreshToken == "" && tok.AccessToken == "" {
		return nil, &AuthRequiredError{TokenPath: path, Cause: errors.New("token file is empty")}
	}
	return &tok, nil
}

// WriteToken saves tok with owner-only permissions.
func WriteToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	return nil
}

// savingTokenSource writes every newly issued token back to disk so a
// refreshed access token survives the process.
type savingTokenSource struct {
	base oauth2.TokenSource
	path string

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := WriteToken(s.path, tok); err != nil {
			return nil, err
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}

// NewDriveService builds an authorized Drive client from the configured
// client secret and saved token.
func NewDriveService(ctx context.Context, cfg config.GoogleConfig) (*drive.Service, error) {
	oauthCfg, err := LoadClientConfig(cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}
	tok, err := ReadToken(cfg.TokenPath)
	if err != nil {
		return nil, err
	}

	ts := &savingTokenSource{
		base: oauthCfg.TokenSource(ctx, tok),
		path: cfg.TokenPath,
		last: tok.AccessToken,
	}
	svc, err := drive.NewService(ctx, option.WithTokenSource(oauth2.ReuseTokenSource(tok, ts)))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}
	return svc, nil
}

// LoginManual runs the copy-and-paste OAuth flow: it prints the consent URL
// to out, reads the redirected URL from in and exchanges its code for a
// token, which is saved to tokenPath.
func LoginManual(ctx context.Context, oauthCfg *oauth2.Config, tokenPath string, in io.Reader, out io.Writer) error {
	cfg := *oauthCfg
	cfg.RedirectURL = manualRedirectURI

	state, err := randomState()
	if err != nil {
		return err
	}

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Fprintln(out, "Visit this URL to authorize wordtrack:")
	fmt.Fprintln(out, authURL)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "After authorizing, you'll be redirected to a localhost URL that won't load.")
	fmt.Fprint(out, "Paste the URL from your browser's address bar: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading redirect URL: %w", err)
	}

	code, gotState, err := extractCodeAndState(strings.TrimSpace(line))
	if err != nil {
		return err
	}
	if gotState != "" && gotState != state {
		return errors.New("state mismatch")
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchanging authorization code: %w", err)
	}
	if tok.RefreshToken == "" {
		return errors.New("no refresh token received; revoke wordtrack's access and try again")
	}
	return WriteToken(tokenPath, tok)
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// extractCodeAndState accepts either the full redirect URL or a bare code.
func extractCodeAndState(raw string) (code string, state string, err error) {
	if raw == "" {
		return "", "", errors.New("no redirect URL entered")
	}
	if !strings.Contains(raw, "://") {
		return raw, "", nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	q := parsed.Query()
	code = q.Get("code")
	if code == "" {
		return "", "", errors.New("no code found in URL")
	}
	return code, q.Get("state"), nil
}
