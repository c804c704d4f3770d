package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"
)

// ErrGenerationFailed is returned for any response that does not carry a
// usable result: transport errors, non-2xx statuses, undecodable bodies and
// unsuccessful operation statuses.
var ErrGenerationFailed = errors.New("generation failed")

const StatusSuccessful = "successful"

// MaxResponseSize caps how much of a response body is read. Results carry
// URLs or short text, so anything larger is treated as a failure.
const MaxResponseSize = 32 << 20

type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Request struct {
	OperationType string
	Fields        map[string]string
	Photo         *Photo
}

type Result struct {
	OperationStatus string          `json:"operationStatus"`
	Output          string          `json:"output,omitempty"`
	FileID          string          `json:"fileId,omitempty"`
	Data            json.RawMessage `json:"data,omitempty"`
}

// ImageURL is the location of the generated asset, preferring the file id.
func (r *Result) ImageURL() string {
	if r.FileID != "" {
		return DownloadURL(r.FileID)
	}
	return r.Output
}

// Text returns data as a string when the endpoint produced text instead of
// an image.
func (r *Result) Text() string {
	if len(r.Data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Data, &s); err == nil {
		return s
	}
	return string(r.Data)
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate submits one generation request. Requests with a photo are sent as
// multipart form data, everything else as JSON.
func (c *Client) Generate(ctx context.Context, genReq Request) (*Result, error) {
	var (
		body        io.Reader
		contentType string
		err         error
	)
	if genReq.Photo != nil {
		body, contentType, err = multipartBody(genReq)
	} else {
		body, contentType, err = jsonBody(genReq)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrGenerationFailed, err)
	}
	if len(respBody) > MaxResponseSize {
		return nil, fmt.Errorf("%w: response body exceeds %d bytes", ErrGenerationFailed, MaxResponseSize)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrGenerationFailed, resp.StatusCode, string(respBody))
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrGenerationFailed, err)
	}

	if !result.ok() {
		return nil, fmt.Errorf("%w: operation status %q", ErrGenerationFailed, result.OperationStatus)
	}
	return &result, nil
}

func (r *Result) ok() bool {
	if r.OperationStatus == StatusSuccessful {
		return true
	}
	// Text operations answer with data only.
	return r.OperationStatus == "" && (r.Text() != "" || r.Output != "")
}

func jsonBody(genReq Request) (io.Reader, string, error) {
	payload := make(map[string]string, len(genReq.Fields)+1)
	for k, v := range genReq.Fields {
		payload[k] = v
	}
	payload["operationType"] = genReq.OperationType

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}

func multipartBody(genReq Request) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("operationType", genReq.OperationType); err != nil {
		return nil, "", err
	}
	for k, v := range genReq.Fields {
		if k == "operationType" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	filename := genReq.Photo.Filename
	if filename == "" {
		filename = "photo"
	}
	ct := genReq.Photo.ContentType
	if ct == "" {
		ct = http.DetectContentType(genReq.Photo.Data)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename=%q`, filename))
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(genReq.Photo.Data); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// DownloadURL is the public download link for a generated file id.
func DownloadURL(fileID string) string {
	return "https://drive.google.com/uc?id=" + fileID
}
