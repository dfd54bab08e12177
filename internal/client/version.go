package client

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrIncompatible is returned when the server's major version differs.
type ErrIncompatible struct {
	Client string
	Server string
}

func (e *ErrIncompatible) Error() string {
	return fmt.Sprintf("server version %s is incompatible with client %s", e.Server, e.Client)
}

// ServerVersion asks the server for its version.
func (c *Client) ServerVersion(ctx context.Context) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("no server configured")
	}
	var info struct {
		Version string `json:"version"`
	}
	if err := c.get(ctx, "/api/version", &info); err != nil {
		return "", err
	}
	return info.Version, nil
}

// CheckServer fails with *ErrIncompatible when the server runs a different
// major version than clientVersion.
func (c *Client) CheckServer(ctx context.Context, clientVersion string) error {
	sv, err := c.ServerVersion(ctx)
	if err != nil {
		return err
	}
	if !Compatible(clientVersion, sv) {
		return &ErrIncompatible{Client: clientVersion, Server: sv}
	}
	return nil
}

// Compatible reports whether two versions share a major version. Versions
// that are not semver, such as development builds, are compatible with
// everything.
func Compatible(client, server string) bool {
	cv, sv := canonical(client), canonical(server)
	if cv == "" || sv == "" {
		return true
	}
	return semver.Major(cv) == semver.Major(sv)
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
