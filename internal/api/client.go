package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lumenpage/materials-cli/internal/config"
	"github.com/lumenpage/materials-cli/internal/utils"
)

const (
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 32 << 20 // images included
)

// envelope is the response wrapper used by every service endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *Error          `json:"error"`
}

// Client talks to the materials service over its REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates an API client from configuration.
func NewClient(cfg *config.APIConfig) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base_url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api base_url must be http or https, got %q", cfg.BaseURL)
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListMaterials fetches materials for the given scope. projectID selects the
// project-scoped endpoint; when empty the global cross-project endpoint is
// used instead.
func (c *Client) ListMaterials(ctx context.Context, scope Scope, projectID string) ([]Material, error) {
	path := "/api/materials"
	if projectID != "" {
		path = fmt.Sprintf("/api/projects/%s/materials", url.PathEscape(projectID))
	}

	query := url.Values{}
	query.Set("project_id", scope.Token())

	var payload struct {
		Materials []Material `json:"materials"`
		Count     int        `json:"count"`
	}
	if err := c.getJSON(ctx, path, query, &payload); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}

	logrus.Debugf("api: listed %d materials (scope=%s)", len(payload.Materials), scope.Token())
	return payload.Materials, nil
}

// ListProjects fetches one page of the project catalog.
func (c *Client) ListProjects(ctx context.Context, limit, offset int) ([]Project, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var payload struct {
		Projects []Project `json:"projects"`
	}
	if err := c.getJSON(ctx, "/api/projects", query, &payload); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	logrus.Debugf("api: listed %d projects", len(payload.Projects))
	return payload.Projects, nil
}

// UploadMaterial uploads a local image file as a new material.
// targetProjectID is the project the material is associated with, empty for
// no association. routeProjectID selects the project-scoped upload route;
// when empty the global route is used.
func (c *Client) UploadMaterial(ctx context.Context, localPath, targetProjectID, routeProjectID string) (*Material, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("upload material: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	contentType, _ := utils.DetectContentType(localPath, nil)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(localPath)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("upload material: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("upload material: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("upload material: %w", err)
	}

	path := "/api/materials/upload"
	if routeProjectID != "" {
		path = fmt.Sprintf("/api/projects/%s/materials/upload", url.PathEscape(routeProjectID))
	}

	// The service treats a missing project_id on the scoped route as "use the
	// path project", so "no association" must be sent explicitly.
	token := targetProjectID
	if token == "" {
		token = scopeTokenUnassigned
	}
	query := url.Values{}
	query.Set("project_id", token)

	req, err := c.newRequest(ctx, http.MethodPost, path, query, &body)
	if err != nil {
		return nil, fmt.Errorf("upload material: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var material Material
	if err := c.do(req, &material); err != nil {
		return nil, fmt.Errorf("upload material: %w", err)
	}

	logrus.Infof("api: uploaded %s as material %s", localPath, material.ID)
	return &material, nil
}

// GenerateMaterial asks the service to generate a standalone material image
// for a project. refImage and extraImages are optional local reference files.
func (c *Client) GenerateMaterial(ctx context.Context, projectID, prompt, refImage string, extraImages []string) (*GenerateResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("prompt", prompt); err != nil {
		return nil, fmt.Errorf("generate material: %w", err)
	}
	if refImage != "" {
		if err := attachFile(writer, "ref_image", refImage); err != nil {
			return nil, fmt.Errorf("generate material: %w", err)
		}
	}
	for _, extra := range extraImages {
		if err := attachFile(writer, "extra_images", extra); err != nil {
			return nil, fmt.Errorf("generate material: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("generate material: %w", err)
	}

	path := fmt.Sprintf("/api/projects/%s/materials/generate", url.PathEscape(projectID))
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &body)
	if err != nil {
		return nil, fmt.Errorf("generate material: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result GenerateResult
	if err := c.do(req, &result); err != nil {
		return nil, fmt.Errorf("generate material: %w", err)
	}

	logrus.Infof("api: generated material %s for project %s", result.MaterialID, projectID)
	return &result, nil
}

// DownloadImage fetches the image bytes behind a material reference.
func (c *Client) DownloadImage(ctx context.Context, ref string) ([]byte, error) {
	resolved := c.ResolveImageURL(ref)
	if resolved == "" {
		return nil, fmt.Errorf("download image: empty reference")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved, nil)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image: unexpected status %d for %s", resp.StatusCode, resolved)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	return data, nil
}

// attachFile adds a local file to a multipart form under the given field.
func attachFile(writer *multipart.Writer, field, localPath string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer file.Close()

	part, err := writer.CreateFormFile(field, filepath.Base(localPath))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	return err
}

// newRequest builds a request against the service base URL.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := *c.baseURL
	target.Path = strings.TrimRight(target.Path, "/") + path
	if query != nil {
		target.RawQuery = query.Encode()
	}
	return http.NewRequestWithContext(ctx, method, target.String(), body)
}

// getJSON issues a GET and decodes the envelope data into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// do sends the request and unwraps the service response envelope.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &Error{
				Code:    "SERVER_ERROR",
				Message: http.StatusText(resp.StatusCode),
				Status:  resp.StatusCode,
			}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if env.Error != nil {
		env.Error.Status = resp.StatusCode
		logrus.Warnf("api: %s %s failed: %v", req.Method, req.URL.Path, env.Error)
		return env.Error
	}
	if !env.Success {
		return &Error{Code: "SERVER_ERROR", Message: "request was not successful", Status: resp.StatusCode}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}
