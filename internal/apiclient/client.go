package apiclient

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
	"strings"
	"time"

	"dermassist/config"
	"dermassist/pkg/response"

	"github.com/google/go-querystring/query"
	"github.com/sirupsen/logrus"
)

// TokenSource supplies the bearer token for outgoing requests and drops the
// local session when the backend rejects it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Client talks to the dermatology backend. Every call returns either decoded
// data or an *Error; nothing is retried.
type Client struct {
	baseURL        string
	requestTimeout time.Duration
	uploadTimeout  time.Duration
	httpClient     *http.Client
	tokens         TokenSource
	log            *logrus.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(cfg config.APIConfig, tokens TokenSource, log *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		requestTimeout: cfg.RequestTimeout,
		uploadTimeout:  cfg.UploadTimeout,
		httpClient:     &http.Client{},
		tokens:         tokens,
		log:            log,
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = config.DefaultRequestTimeout
	}
	if c.uploadTimeout <= 0 {
		c.uploadTimeout = config.DefaultUploadTimeout
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, params interface{}, out interface{}) (*response.Meta, error) {
	return c.Do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.Do(ctx, http.MethodPost, path, nil, body, out)
	return err
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.Do(ctx, http.MethodPatch, path, nil, body, out)
	return err
}

func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

// Do sends a JSON request. params may be nil, url.Values, or a struct with
// `url` tags; body is JSON-encoded when non-nil. The envelope's data is
// decoded into out and its pagination meta returned.
func (c *Client) Do(ctx context.Context, method, path string, params interface{}, body, out interface{}) (*response.Meta, error) {
	values, err := encodeParams(params)
	if err != nil {
		return nil, NewError(KindUnknown, fmt.Sprintf("encode query: %v", err))
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, NewError(KindUnknown, fmt.Sprintf("encode request: %v", err))
		}
		reader = bytes.NewReader(b)
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, method, path, values, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// Upload posts a single file as multipart/form-data under the given field
// name. Uploads get the longer upload timeout.
func (c *Client) Upload(ctx context.Context, path, field, filename, contentType string, content io.Reader, out interface{}) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return NewError(KindUnknown, fmt.Sprintf("create form file: %v", err))
	}
	if _, err := io.Copy(part, content); err != nil {
		return NewError(KindUnknown, fmt.Sprintf("read upload: %v", err))
	}
	if err := writer.Close(); err != nil {
		return NewError(KindUnknown, fmt.Sprintf("close multipart writer: %v", err))
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, err = c.send(req, out)
	return err
}

func (c *Client) newRequest(ctx context.Context, method, path string, values url.Values, body io.Reader) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(values) != 0 {
		u += "?" + values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, NewError(KindUnknown, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			c.log.Warnf("Failed to read session token: %+v", err)
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out interface{}) (*response.Meta, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := transportError(err)
		c.log.Warnf("%s %s failed: %+v", req.Method, req.URL.Path, err)
		return nil, apiErr
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, transportError(err)
	}
	c.log.Debugf("%s %s -> %d", req.Method, req.URL.Path, res.StatusCode)

	if res.StatusCode >= 400 {
		apiErr := decodeError(res.StatusCode, raw)
		if apiErr.Kind == KindUnauthorized && c.tokens != nil {
			// The request context may already be done; clearing must still happen.
			if err := c.tokens.Clear(context.WithoutCancel(req.Context())); err != nil {
				c.log.Warnf("Failed to clear session after 401: %+v", err)
			} else {
				c.log.Info("Session cleared after unauthorized response")
			}
		}
		return nil, apiErr
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var env response.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Error{Kind: KindUnknown, StatusCode: res.StatusCode, Message: "Invalid response from server.", Err: err}
	}
	if !env.Success {
		return nil, &Error{Kind: KindUnknown, StatusCode: res.StatusCode, Message: firstNonEmpty(env.Message, defaultMessages[KindUnknown])}
	}
	if out != nil && len(env.Data) != 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &Error{Kind: KindUnknown, StatusCode: res.StatusCode, Message: "Invalid response from server.", Err: err}
		}
	}
	return env.Meta, nil
}

// decodeError turns an error response into an *Error, keeping the server's
// message and field errors when the body is a JSON envelope.
func decodeError(status int, raw []byte) *Error {
	kind := kindForStatus(status)
	apiErr := &Error{Kind: kind, StatusCode: status}

	var env response.Envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		apiErr.Message = env.Message
		if len(env.Error) != 0 {
			var text string
			var fields map[string]string
			switch {
			case json.Unmarshal(env.Error, &text) == nil:
				apiErr.Message = firstNonEmpty(apiErr.Message, text)
			case json.Unmarshal(env.Error, &fields) == nil:
				apiErr.Fields = fields
			}
		}
	}
	apiErr.Message = firstNonEmpty(apiErr.Message, defaultMessages[kind])
	return apiErr
}

func encodeParams(params interface{}) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	default:
		return query.Values(params)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
