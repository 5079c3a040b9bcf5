package services

import (
	"context"
	"time"

	"github.com/okvist/crewdesk/internal/storage"
	"github.com/okvist/crewdesk/internal/utils"
)

// signedURLTTL matches what the frontend expects: links stay valid for
// one hour after issuance.
const signedURLTTL = 3600 * time.Second

type StorageService interface {
	SignedURL(ctx context.Context, path string) (string, error)
}

type storageService struct {
	signer storage.Signer
}

func NewStorageService(signer storage.Signer) StorageService {
	return &storageService{signer: signer}
}

func (s *storageService) SignedURL(ctx context.Context, path string) (string, error) {
	const op = "StorageService.SignedURL"

	if path == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "path query parameter is required", nil)
	}
	if s.signer == nil {
		return "", utils.E(utils.CodeInternal, op,
			"SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY must be set", nil)
	}

	url, err := s.signer.SignedGetURL(ctx, path, signedURLTTL)
	if err != nil {
		if utils.IsCode(err, utils.CodeUnavailable) {
			return "", err
		}
		return "", utils.E(utils.CodeUnavailable, op, "failed to generate signed URL", err)
	}
	return url, nil
}
