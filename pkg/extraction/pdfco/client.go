package pdfco

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the PDF.co conversion API: submit a file URL, receive the
// extracted plain text.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

type convertRequest struct {
	URL    string `json:"url"`
	Inline bool   `json:"inline"`
	Async  bool   `json:"async"`
}

type convertResponse struct {
	Body    string `json:"body"`
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.pdf.co/v1"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
}

func (c *Client) Submit(ctx context.Context, fileURL string) (string, error) {
	reqBody := convertRequest{
		URL:    fileURL,
		Inline: true,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/pdf/convert/to/text", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("conversion request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pdf conversion api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var convResp convertResponse
	if err := json.Unmarshal(bodyBytes, &convResp); err != nil {
		return "", fmt.Errorf("failed to decode conversion response: %w", err)
	}

	if convResp.Error {
		return "", fmt.Errorf("pdf conversion api returned error: %s", convResp.Message)
	}

	return convResp.Body, nil
}
