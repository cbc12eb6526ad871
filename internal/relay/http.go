package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"peerid/internal/crypto"
	"peerid/internal/domain"
)

// HTTP talks to the identity registry over JSON/HTTP.
type HTTP struct {
	Base string
	HTTP *http.Client

	now func() time.Time
}

// NewHTTP returns a registry client for base. A nil client means http.DefaultClient.
func NewHTTP(base string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: client, now: time.Now}
}

// envelope is the registry's response wrapper.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// AnnounceIdentity creates or updates the registry entry for id.
func (c *HTTP) AnnounceIdentity(ctx context.Context, id domain.Identity) error {
	return c.putOrPost(ctx, id, identityPath(id.PublicKey), id.Info)
}

// FetchIdentity returns the info the registry holds for publicKey.
func (c *HTTP) FetchIdentity(ctx context.Context, publicKey string) (domain.Info, error) {
	path := identityPath(publicKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return domain.Info{}, err
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.Info{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return domain.Info{}, fmt.Errorf("relay get %s: %s", path, resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return domain.Info{}, err
	}
	var info domain.Info
	return info, json.Unmarshal(env.Data, &info)
}

// putOrPost updates the resource at path, creating it when the registry
// answers the PUT with 404.
func (c *HTTP) putOrPost(ctx context.Context, id domain.Identity, path string, body any) error {
	status, err := c.send(ctx, id, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	method := http.MethodPut
	if status == http.StatusNotFound {
		method = http.MethodPost
		if status, err = c.send(ctx, id, method, path, body); err != nil {
			return err
		}
	}
	if status/100 != 2 {
		return fmt.Errorf("relay %s %s: %d %s", strings.ToLower(method), path, status, http.StatusText(status))
	}
	return nil
}

func (c *HTTP) send(ctx context.Context, id domain.Identity, method, path string, body any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}

	token, err := crypto.SignToken(id, crypto.TokenRequest{
		Method: method,
		Path:   req.URL.EscapedPath(),
		Body:   payload,
	}, c.now())
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+token)
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func identityPath(publicKey string) string {
	return "/identities/" + url.PathEscape(publicKey)
}

var _ domain.Announcer = (*HTTP)(nil)
