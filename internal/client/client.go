// Package client is a thin HTTP client for the shastore API, used by the
// shactl command.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// APIError is a non-2xx response decoded from the {"detail": ...} envelope.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL (e.g. "http://localhost:8000").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// TextHashResult mirrors the /hash/text/ response.
type TextHashResult struct {
	OriginalText string `json:"original_text"`
	Algorithm    string `json:"algorithm"`
	Hash         string `json:"hash"`
}

// FileHashResult mirrors the /hash/file/ response.
type FileHashResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Algorithm   string `json:"algorithm"`
	Hash        string `json:"hash"`
}

// CheckResult mirrors the /hash/check/ response.
type CheckResult struct {
	Match   bool   `json:"match"`
	Message string `json:"message"`
}

// HashRecord mirrors one element of the /hashes/ response.
type HashRecord struct {
	ID               string    `json:"_id"`
	InputType        string    `json:"input_type"`
	OriginalInput    string    `json:"original_input,omitempty"`
	OriginalFilename string    `json:"original_filename,omitempty"`
	Algorithm        string    `json:"algorithm"`
	Hash             string    `json:"hash"`
	Timestamp        time.Time `json:"timestamp"`
}

// HashText submits text for hashing and returns the stored result.
func (c *Client) HashText(ctx context.Context, text, algorithm string) (*TextHashResult, error) {
	body, err := json.Marshal(map[string]string{"text": text, "algorithm": algorithm})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hash/text/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	out := &TextHashResult{}
	if err := c.do(req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// HashFile uploads the file at path for hashing.
func (c *Client) HashFile(ctx context.Context, path, algorithm string) (*FileHashResult, error) {
	body, contentType, err := fileForm(path, nil)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/hash/file/?algorithm=" + url.QueryEscape(algorithm)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	out := &FileHashResult{}
	if err := c.do(req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckFile uploads the file at path and verifies it against knownHash.
func (c *Client) CheckFile(ctx context.Context, path, algorithm, knownHash string) (*CheckResult, error) {
	body, contentType, err := fileForm(path, map[string]string{
		"known_hash": knownHash,
		"algorithm":  algorithm,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hash/check/", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	out := &CheckResult{}
	if err := c.do(req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListHashes fetches the most recent hash records.
func (c *Client) ListHashes(ctx context.Context) ([]HashRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/hashes/", nil)
	if err != nil {
		return nil, err
	}

	var out []HashRecord
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/register", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, &struct {
		Username string `json:"username"`
	}{})
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{"username": {username}, "password": {password}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	out := &struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}{}
	if err := c.do(req, out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// do executes the request and decodes the JSON response into v. Non-2xx
// responses become *APIError.
func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: "unknown error"}
		var envelope struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Detail != "" {
			apiErr.Detail = envelope.Detail
		}
		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// fileForm builds a multipart body with the named file plus extra fields.
// The whole body is buffered; shactl targets files, not unbounded streams.
func fileForm(path string, fields map[string]string) (io.Reader, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	fw, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, "", err
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
