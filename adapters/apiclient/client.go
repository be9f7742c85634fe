// Package apiclient reads the portfolio back through the public HTTP API.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/skill"
)

const DefaultTimeout = 8 * time.Second

type Client struct {
	base string
	http *http.Client
}

func New(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Profile(ctx context.Context) (*profile.Profile, error) {
	var p profile.Profile
	if err := c.getJSON(ctx, "/profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Skills(ctx context.Context) ([]*skill.Skill, error) {
	var out []*skill.Skill
	if err := c.getJSON(ctx, "/skills", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Projects(ctx context.Context) ([]*project.Project, error) {
	var out []*project.Project
	if err := c.getJSON(ctx, "/projects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
