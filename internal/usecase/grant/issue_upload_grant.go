package grant

import (
	"context"
	"fmt"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/port"
)

// SuffixGen produces the fresh unique suffix embedded in derived storage keys.
type SuffixGen func() string

type grantIssuerSrv struct {
	strg      port.Storage
	bucket    string
	genSuffix SuffixGen
}

// NewGrantIssuer constructs a port.GrantIssuer implementation.
func NewGrantIssuer(strg port.Storage, bucket string, genSuffix SuffixGen) port.GrantIssuer {
	return &grantIssuerSrv{strg: strg, bucket: bucket, genSuffix: genSuffix}
}

// IssueUploadGrant validates the declared upload and mints a presigned PUT
// URL scoped to a single derived object key. Nothing is persisted; the
// grant expires on its own.
func (s *grantIssuerSrv) IssueUploadGrant(ctx context.Context, in port.IssueUploadGrantInput) (port.IssueUploadGrantOutput, error) {
	if in.Purpose != PurposePostMedia && in.Purpose != PurposeAvatar {
		return port.IssueUploadGrantOutput{}, fmt.Errorf("%w: unknown purpose %q", port.ErrInvalidMediaType, in.Purpose)
	}
	if !IsMimeTypeAllowed(in.Purpose, in.ContentType) {
		return port.IssueUploadGrantOutput{}, fmt.Errorf("%w: %q for purpose %q", port.ErrInvalidMediaType, in.ContentType, in.Purpose)
	}
	maxSize := MaxSizeFor(in.Purpose)
	if in.SizeBytes <= 0 || in.SizeBytes > maxSize {
		return port.IssueUploadGrantOutput{}, fmt.Errorf("%w: %d bytes (max %d)", port.ErrPayloadTooLarge, in.SizeBytes, maxSize)
	}

	// ownership is inferable from the key alone: prefix/requester/suffix
	objectKey := fmt.Sprintf("%s/%s/%s%s",
		KeyPrefixFor(in.Purpose), in.Requester, s.genSuffix(), mimeTypeExtensions[in.ContentType])

	url, err := s.strg.GeneratePresignedUploadURL(ctx, s.bucket, objectKey, GrantExpiry)
	if err != nil {
		return port.IssueUploadGrantOutput{}, err
	}

	return port.IssueUploadGrantOutput{
		ObjectKey:   objectKey,
		UploadURL:   url,
		PublicURL:   s.strg.PublicURL(s.bucket, objectKey),
		ContentType: in.ContentType,
		MaxSize:     maxSize,
		ExpiresAt:   time.Now().UTC().Add(GrantExpiry),
	}, nil
}
