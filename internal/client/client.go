// Package client talks to the grantdocs API on behalf of the uploader.
// Client.Submit implements wizard.Submitter.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"grantdocs/internal/catalog"
	"grantdocs/internal/model"
	"grantdocs/internal/wizard"
)

// UploadPath is the endpoint a draft is posted to.
const UploadPath = "/api/upload"

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for the API at baseURL. There is no request timeout;
// callers bound requests with their context.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Submit posts d as one multipart request: scalar fields as individual parts,
// then every file under its category field, one part per file. Any 2xx is
// success and the body is ignored. Other statuses return *SubmissionError.
func (c *Client) Submit(ctx context.Context, d wizard.Draft) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeDraft(mw, d))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+UploadPath, pr)
	if err != nil {
		pr.Close()
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.log.Debug("upload_submit",
		zap.String("title", d.Title),
		zap.String("fiscal_year", d.FiscalYear),
		zap.Int("files", d.TotalFiles()),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		// Unblock the writer goroutine if the transport gave up early.
		pr.CloseWithError(err)
		c.log.Warn("upload_failed", zap.Error(err))
		return fmt.Errorf("submit upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := decodeError(resp)
		c.log.Warn("upload_rejected", zap.Int("status", serr.Status), zap.String("error", serr.Message))
		return serr
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeDraft(mw *multipart.Writer, d wizard.Draft) error {
	scalars := []struct{ name, value string }{
		{"title", d.Title},
		{"fiscalYear", d.FiscalYear},
		{"source", d.Source},
		{"grantType", d.GrantType},
		{"remarks", d.Remarks},
	}
	for _, s := range scalars {
		if err := mw.WriteField(s.name, s.value); err != nil {
			return err
		}
	}

	for _, cat := range catalog.Categories() {
		for _, f := range d.Files[cat] {
			if err := writeFile(mw, cat.Field(), f); err != nil {
				return err
			}
		}
	}
	return mw.Close()
}

func writeFile(mw *multipart.Writer, field string, f wizard.LocalFile) error {
	src, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer src.Close()

	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name)))
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("read %s: %w", f.Name, err)
	}
	return nil
}

// FiscalYears fetches the fiscal year lookup table.
func (c *Client) FiscalYears(ctx context.Context) ([]model.FiscalYear, error) {
	var out []model.FiscalYear
	return out, c.getJSON(ctx, "/api/fiscal-years", &out)
}

// Sources fetches the funding source lookup table.
func (c *Client) Sources(ctx context.Context) ([]model.Source, error) {
	var out []model.Source
	return out, c.getJSON(ctx, "/api/sources", &out)
}

// GrantTypes fetches the grant type lookup table.
func (c *Client) GrantTypes(ctx context.Context) ([]model.GrantType, error) {
	var out []model.GrantType
	return out, c.getJSON(ctx, "/api/grant-types", &out)
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// LocalFile stats path and describes it for the draft.
func LocalFile(path string) (wizard.LocalFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return wizard.LocalFile{}, err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return wizard.LocalFile{}, err
	}
	if fi.IsDir() {
		return wizard.LocalFile{}, fmt.Errorf("%s is a directory", path)
	}
	return wizard.LocalFile{Name: fi.Name(), Path: abs, Size: fi.Size()}, nil
}
