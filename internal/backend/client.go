// Package backend is the typed client for the external resume-analysis
// service. All tolerance for the service's loose response shapes lives here:
// the upload score that may sit at the root or inside data, and error bodies
// that may use any of several keys.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resume-insight/internal/model"
	"resume-insight/pkg/httpclient"
)

// ErrUnexpectedShape means the service answered 2xx but without the payload
// envelope the dashboard depends on.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// ServerError carries an error message the service reported in its body.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// LookupError is a failed platform lookup: non-2xx status, unreachable
// service, or an unparseable 2xx body.
type LookupError struct {
	Platform model.Platform
	Message  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s lookup failed: %s", e.Platform, e.Message)
}

// errorKeys are the candidate locations for an error message in a response
// body, most specific first. The GitHub integration reports its GraphQL and
// PR-API failures under their own keys.
var errorKeys = []string{"error_graphql", "error_pr_api", "error"}

// errorText extracts the most specific error string from an error response
// body. A body that is not JSON at all yields "Unknown error"; a JSON body
// without any known key falls back to the HTTP status text.
func errorText(body []byte, statusText string) string {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return "Unknown error"
	}
	for _, key := range errorKeys {
		if v, ok := m[key].(string); ok && v != "" {
			return v
		}
	}
	return statusText
}

// Client talks to the analysis service.
type Client struct {
	base          string
	hc            *httpclient.Client
	githubToken   string
	uploadTimeout time.Duration
}

// NewClient builds a client for the service at base. githubToken, when set,
// is forwarded on GitHub lookups so the backend can use GraphQL access.
// uploadTimeout bounds UploadResume only; platform lookups never time out,
// they resolve whenever the service answers. Zero disables the bound.
func NewClient(base string, githubToken string, hc *httpclient.Client, uploadTimeout time.Duration) *Client {
	return &Client{
		base:          strings.TrimRight(base, "/"),
		hc:            hc,
		githubToken:   githubToken,
		uploadTimeout: uploadTimeout,
	}
}

// UploadResult is the upload envelope the dashboard depends on. Data holds
// the parsed-resume fields; the scores are the root-level copies when the
// service put them there.
type UploadResult struct {
	Data      json.RawMessage
	ATSScore  *float64
	WordCount *int
}

// UploadResume submits the file as a single-part upload and validates the
// response envelope. A body-level error string wins over the HTTP status: the
// service reports structured errors with a 400 and the message is what the
// operator needs to see.
func (c *Client) UploadResume(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	if c.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.uploadTimeout)
		defer cancel()
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finish upload form: %w", err)
	}

	res, err := c.hc.Post(ctx, c.base+"/upload_resume", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}

	var envelope struct {
		Data      json.RawMessage `json:"data"`
		ATSScore  *float64        `json:"ats_score"`
		WordCount *int            `json:"word_count"`
		Error     string          `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		if res.StatusCode < 200 || res.StatusCode > 299 {
			return nil, &ServerError{Message: errorText(body, http.StatusText(res.StatusCode))}
		}
		return nil, ErrUnexpectedShape
	}
	if envelope.Error != "" {
		return nil, &ServerError{Message: envelope.Error}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &ServerError{Message: errorText(body, http.StatusText(res.StatusCode))}
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil, ErrUnexpectedShape
	}
	return &UploadResult{
		Data:      envelope.Data,
		ATSScore:  envelope.ATSScore,
		WordCount: envelope.WordCount,
	}, nil
}

// Lookup fetches platform statistics for username. On success it returns the
// whole response payload plus the per-day activity series when the platform
// provides one; the slot consumer stores the payload opaquely.
func (c *Client) Lookup(ctx context.Context, platform model.Platform, username string) (*model.PlatformStats, error) {
	lookupURL := fmt.Sprintf("%s/analyze_%s/%s", c.base, platform, url.PathEscape(username))
	if platform == model.PlatformGitHub && c.githubToken != "" {
		lookupURL += "?token=" + url.QueryEscape(c.githubToken)
	}

	res, err := c.hc.Get(ctx, lookupURL)
	if err != nil {
		return nil, fmt.Errorf("%s lookup: %w", platform, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", platform, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &LookupError{Platform: platform, Message: errorText(body, http.StatusText(res.StatusCode))}
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &LookupError{Platform: platform, Message: "Unknown error"}
	}

	return &model.PlatformStats{
		Payload:  json.RawMessage(body),
		Activity: extractActivity(platform, payload),
	}, nil
}

// extractActivity pulls the activity graph out of a lookup payload. LeetCode
// reports it at the top level, GitHub nests it under github_metrics, CodeChef
// has none.
func extractActivity(platform model.Platform, payload map[string]json.RawMessage) []model.ActivitySample {
	var raw json.RawMessage
	switch platform {
	case model.PlatformLeetCode:
		raw = payload["activity_graph"]
	case model.PlatformGitHub:
		var metrics struct {
			ActivityGraph json.RawMessage `json:"activity_graph"`
		}
		if err := json.Unmarshal(payload["github_metrics"], &metrics); err != nil {
			return nil
		}
		raw = metrics.ActivityGraph
	}
	if len(raw) == 0 {
		return nil
	}
	var samples []model.ActivitySample
	if err := json.Unmarshal(raw, &samples); err != nil {
		return nil
	}
	return samples
}
