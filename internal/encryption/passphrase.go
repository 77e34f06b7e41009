package encryption

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PassphraseEnv names the environment variable that supplies the key
// passphrase for unattended runs.
const PassphraseEnv = "WORDTRACK_PASSPHRASE"

// ErrNoPassphrase is returned when no passphrase is set in the environment
// and stdin is not a terminal to prompt on.
var ErrNoPassphrase = errors.New("no passphrase available: set " + PassphraseEnv + " or run interactively")

// PassphraseReader obtains the key passphrase from the environment or by
// prompting on a terminal without echo.
type PassphraseReader struct {
	Getenv func(string) string
	Prompt io.Writer // where the prompt is written; usually os.Stderr
	fd     int
}

// NewPassphraseReader reads from the process environment and prompts on stdin.
func NewPassphraseReader() *PassphraseReader {
	return &PassphraseReader{
		Getenv: os.Getenv,
		Prompt: os.Stderr,
		fd:     int(os.Stdin.Fd()),
	}
}

// Read returns the passphrase. prompt is shown only when asking interactively.
func (p *PassphraseReader) Read(prompt string) (string, error) {
	if v := p.Getenv(PassphraseEnv); v != "" {
		return v, nil
	}
	if !term.IsTerminal(p.fd) {
		return "", ErrNoPassphrase
	}

	fmt.Fprint(p.Prompt, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.Prompt)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

// ReadNew asks for a new passphrase twice and fails if the entries differ or
// are empty. The environment variable, when set, is used as-is.
func (p *PassphraseReader) ReadNew() (string, error) {
	if v := p.Getenv(PassphraseEnv); v != "" {
		return v, nil
	}
	first, err := p.Read("New passphrase: ")
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", errors.New("passphrase must not be empty")
	}
	second, err := p.Read("Repeat passphrase: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passphrases do not match")
	}
	return first, nil
}
