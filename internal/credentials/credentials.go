// Package credentials is the narrow external-collaborator interface
// spec.md §6 names for code-forge authentication lookups. Real credential
// stores (OS keychains, credential helpers) are out of scope; this package
// gives the forge workers something to depend on and a minimal netrc-style
// implementation sufficient for tests and simple local use.
package credentials

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Lookup resolves a username/token pair for host, or ok=false if none is
// configured.
type Lookup func(host string) (user, token string, ok bool)

// NetrcLookup returns a Lookup backed by the ~/.netrc file (the "machine
// <host> login <user> password <token>" format curl/git already use).
func NetrcLookup() Lookup {
	home, err := os.UserHomeDir()
	if err != nil {
		return func(string) (string, string, bool) { return "", "", false }
	}
	entries := parseNetrc(filepath.Join(home, ".netrc"))
	return func(host string) (string, string, bool) {
		e, ok := entries[host]
		if !ok {
			return "", "", false
		}
		return e.login, e.password, true
	}
}

type netrcEntry struct {
	login    string
	password string
}

func parseNetrc(path string) map[string]netrcEntry {
	entries := map[string]netrcEntry{}
	f, err := os.Open(path)
	if err != nil {
		return entries
	}
	defer f.Close()

	var machine string
	var entry netrcEntry
	flush := func() {
		if machine != "" {
			entries[machine] = entry
		}
		machine, entry = "", netrcEntry{}
	}

	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tok := scanner.Text()
		switch tok {
		case "machine":
			flush()
			if scanner.Scan() {
				machine = scanner.Text()
			}
		case "login":
			if scanner.Scan() {
				entry.login = scanner.Text()
			}
		case "password":
			if scanner.Scan() {
				entry.password = scanner.Text()
			}
		case "default":
			// A "default" stanza ends the current machine entry; its own
			// login/password are discarded, since only exact machine
			// matches are supported.
			flush()
		default:
			// Unrecognised tokens are skipped.
			_ = strings.TrimSpace(tok)
		}
	}
	flush()
	return entries
}
