package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Bucket is an ObjectStore backed by a hosted storage service speaking
// the common bucket REST API: objects are written to
// {endpoint}/object/{bucket}/{name} with a bearer key and served from
// {endpoint}/object/public/{bucket}/{name}.
type Bucket struct {
	endpoint string
	bucket   string
	key      string
	client   *http.Client
}

// NewBucket creates a client for the given storage endpoint and bucket.
func NewBucket(endpoint, bucket, key string) *Bucket {
	return &Bucket{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		bucket:   bucket,
		key:      key,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *Bucket) objectURL(name string) string {
	return fmt.Sprintf("%s/object/%s/%s", b.endpoint, b.bucket, name)
}

// PublicURL returns the public URL an object is served from.
func (b *Bucket) PublicURL(name string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", b.endpoint, b.bucket, name)
}

// Put uploads an object and returns its public URL.
func (b *Bucket) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.objectURL(name), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.key)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "max-age=3600")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("uploading object: storage returned %d: %s", resp.StatusCode, body)
	}

	return b.PublicURL(name), nil
}

// Remove deletes an object. A 404 from the store is treated as success.
func (b *Bucket) Remove(ctx context.Context, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, b.objectURL(name), nil)
	if err != nil {
		return fmt.Errorf("building delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.key)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("deleting object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("deleting object: storage returned %d", resp.StatusCode)
	}
	return nil
}
