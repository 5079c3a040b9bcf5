package storage

import (
	"context"
	"time"

	"github.com/okvist/crewdesk/internal/supabase"
)

// AttachmentBucket is the logical bucket every task attachment lives in.
const AttachmentBucket = "task-attachments"

type SupabaseSigner struct {
	client *supabase.Client
	bucket string
}

func NewSupabaseSigner(client *supabase.Client) *SupabaseSigner {
	return &SupabaseSigner{client: client, bucket: AttachmentBucket}
}

func (s *SupabaseSigner) SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error) {
	return s.client.SignObjectURL(ctx, s.bucket, objectName, ttl)
}
