package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a client for the embedding inference sidecar. The sidecar
// owns the sentence-embedding, image-embedding and joint text/image
// models; this client only moves scores around.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// TextSimilarityRequest compares two free-text strings.
type TextSimilarityRequest struct {
	TextA string `json:"text_a"`
	TextB string `json:"text_b"`
}

// ImageSimilarityRequest compares two stored images by object key.
type ImageSimilarityRequest struct {
	ImageA string `json:"image_a"`
	ImageB string `json:"image_b"`
}

// TextImageSimilarityRequest compares a text against a stored image.
type TextImageSimilarityRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// SimilarityResponse carries a cosine similarity score in [0,1].
type SimilarityResponse struct {
	Similarity       float64 `json:"similarity"`
	ProcessingTimeMs float64 `json:"processing_time_ms,omitempty"`
}

// HealthResponse reports which models the sidecar managed to load.
type HealthResponse struct {
	Status           string `json:"status"`
	TextModelLoaded  bool   `json:"text_model_loaded"`
	ImageModelLoaded bool   `json:"image_model_loaded"`
	ClipModelLoaded  bool   `json:"clip_model_loaded"`
	Device           string `json:"device"`
}

// NewClient creates a new embedding service client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// TextSimilarity returns the sentence-embedding cosine similarity of two texts.
func (c *Client) TextSimilarity(ctx context.Context, a, b string) (float64, error) {
	resp, err := c.postSimilarity(ctx, "/api/v1/similarity/text", TextSimilarityRequest{TextA: a, TextB: b})
	if err != nil {
		return 0, err
	}
	return resp.Similarity, nil
}

// ImageSimilarity returns the image-embedding cosine similarity of two stored images.
func (c *Client) ImageSimilarity(ctx context.Context, keyA, keyB string) (float64, error) {
	resp, err := c.postSimilarity(ctx, "/api/v1/similarity/image", ImageSimilarityRequest{ImageA: keyA, ImageB: keyB})
	if err != nil {
		return 0, err
	}
	return resp.Similarity, nil
}

// TextImageSimilarity returns the joint-embedding similarity between a
// text and a stored image.
func (c *Client) TextImageSimilarity(ctx context.Context, text, key string) (float64, error) {
	resp, err := c.postSimilarity(ctx, "/api/v1/similarity/text-image", TextImageSimilarityRequest{Text: text, Image: key})
	if err != nil {
		return 0, err
	}
	return resp.Similarity, nil
}

// HealthCheck checks whether the embedding service is up and its models loaded.
func (c *Client) HealthCheck(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/v1/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

func (c *Client) postSimilarity(ctx context.Context, path string, payload interface{}) (*SimilarityResponse, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result SimilarityResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
