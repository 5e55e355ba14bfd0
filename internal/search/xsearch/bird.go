// Package xsearch discovers X posts through the external Bird CLI, with a
// bounded retry engine that broadens an unproductive query.
package xsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"last30days/internal/domain/research"
	"last30days/internal/errs"
)

const (
	defaultBinary      = "bird"
	whoamiTimeout      = 10 * time.Second
	defaultCallTimeout = 60 * time.Second
)

// BirdClient shells out to the Bird CLI for X search. Call timeouts are
// owned here, scaled by the configured depth.
type BirdClient struct {
	binary  string
	limit   int
	timeout time.Duration

	// runCommand is swappable in tests.
	runCommand func(ctx context.Context, name string, args ...string) ([]byte, []byte, error)
}

func NewBirdClient(binary string, depth research.DepthSpec) *BirdClient {
	resolved := strings.TrimSpace(binary)
	if resolved == "" {
		resolved = defaultBinary
	}

	timeout := depth.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	limit := depth.MaxItems
	if limit <= 0 {
		limit = 20
	}

	return &BirdClient{
		binary:     resolved,
		limit:      limit,
		timeout:    timeout,
		runCommand: runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

type birdItem struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	URL      string `json:"url"`
	Username string `json:"username"`
	Date     string `json:"date"`
}

type birdSearchOutput struct {
	Items []birdItem `json:"items"`
}

// Search runs one `bird search` invocation. The query already carries the
// date-filter suffix; since is additionally applied to parsed item dates
// because the CLI treats the operator as advisory.
func (c *BirdClient) Search(ctx context.Context, query string, since string) ([]research.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stdout, stderr, err := c.runCommand(callCtx, c.binary,
		"search", query, "--json", "-n", strconv.Itoa(c.limit))
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("bird search timed out after %s", c.timeout)
		}
		detail := firstLine(string(stderr))
		if detail == "" {
			return nil, errs.Wrap(err, "run bird search")
		}
		return nil, errs.Wrapf(err, "run bird search: %s", detail)
	}

	items, err := parseSearchOutput(stdout, since)
	if err != nil {
		return nil, errs.Wrap(err, "parse bird output")
	}
	return items, nil
}

func parseSearchOutput(raw []byte, since string) ([]research.Item, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var out birdSearchOutput
	if err := json.Unmarshal(trimmed, &out); err != nil {
		// Some versions emit a bare array.
		if arrErr := json.Unmarshal(trimmed, &out.Items); arrErr != nil {
			return nil, err
		}
	}

	items := make([]research.Item, 0, len(out.Items))
	for _, item := range out.Items {
		if strings.TrimSpace(item.URL) == "" {
			continue
		}
		if item.Date != "" && since != "" && item.Date < since {
			continue
		}

		items = append(items, research.Item{
			ID:        fmt.Sprintf("X%d", len(items)+1),
			Source:    research.SourceX,
			Title:     firstLine(item.Text),
			URL:       item.URL,
			Author:    strings.TrimPrefix(strings.TrimSpace(item.Username), "@"),
			Date:      item.Date,
			Relevance: 0.5,
		})
	}
	return items, nil
}

func firstLine(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	parts := strings.SplitN(trimmed, "\n", 2)
	return strings.TrimSpace(parts[0])
}

// Status describes whether the Bird CLI is usable on this machine.
type Status struct {
	Installed     bool   `json:"installed"`
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
	CanInstall    bool   `json:"can_install"`
}

// CheckStatus probes the Bird CLI. It never fails: a missing or broken
// binary reads as not installed / not authenticated.
func (c *BirdClient) CheckStatus(ctx context.Context) Status {
	status := Status{}

	if _, err := exec.LookPath(c.binary); err != nil {
		if _, npmErr := exec.LookPath("npm"); npmErr == nil {
			status.CanInstall = true
		}
		return status
	}
	status.Installed = true

	if _, err := exec.LookPath("npm"); err == nil {
		status.CanInstall = true
	}

	whoCtx, cancel := context.WithTimeout(ctx, whoamiTimeout)
	defer cancel()

	stdout, _, err := c.runCommand(whoCtx, c.binary, "whoami")
	if err != nil {
		return status
	}

	username := firstLine(string(stdout))
	if username != "" {
		status.Authenticated = true
		status.Username = strings.TrimPrefix(username, "@")
	}
	return status
}
