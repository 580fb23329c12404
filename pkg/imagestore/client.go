package imagestore

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the hosted object storage that serves menu item images.
// Objects are uploaded into a single public bucket and addressed by their
// public URL.
type Client struct {
	BaseURL    string
	Bucket     string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, bucket, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Bucket:  bucket,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) objectURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", c.BaseURL, c.Bucket, name)
}

// PublicURL returns the browser-reachable address of a stored object.
func (c *Client) PublicURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.BaseURL, c.Bucket, name)
}

// Upload stores the file under a collision-free name and returns its public
// URL.
func (c *Client) Upload(fileName, contentType string, body io.Reader) (string, error) {
	name := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString(), path.Ext(fileName))

	req, err := http.NewRequest(http.MethodPost, c.objectURL(name), body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("image upload failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	return c.PublicURL(name), nil
}

// ObjectName reverses PublicURL: it extracts the object name from a public
// URL served by this client's bucket. It reports false for URLs that point
// anywhere else, so externally hosted images are never touched.
func (c *Client) ObjectName(publicURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", c.BaseURL, c.Bucket)
	name := strings.TrimPrefix(publicURL, prefix)
	if name == publicURL || name == "" {
		return "", false
	}
	return name, true
}

// Delete removes a stored object by name.
func (c *Client) Delete(name string) error {
	req, err := http.NewRequest(http.MethodDelete, c.objectURL(name), nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("image delete failed with status %d", resp.StatusCode)
	}
	return nil
}
