package storage

import (
	"context"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
)

// GCSSigner is the alternate backend for deployments that keep
// attachments in a Google Cloud Storage bucket instead of Supabase.
type GCSSigner struct {
	client *gcs.Client
	bucket string
}

func NewGCSSigner(ctx context.Context, bucket string) (*GCSSigner, error) {
	c, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSSigner{client: c, bucket: bucket}, nil
}

func (s *GCSSigner) Close() error { return s.client.Close() }

func (s *GCSSigner) SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error) {
	return s.client.Bucket(s.bucket).SignedURL(objectName, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(ttl),
	})
}
