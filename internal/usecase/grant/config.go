package grant

import "time"

const (
	PurposePostMedia = "post-media"
	PurposeAvatar    = "avatar"
)

// GrantExpiry keeps grants short-lived: a client is expected to start its
// upload immediately after asking for one.
const GrantExpiry = 5 * time.Minute

const (
	MaxAvatarSize    = 5 * 1024 * 1024
	MaxPostMediaSize = 50 * 1024 * 1024
)

var allowedAvatarMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

var allowedPostMediaMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
	"video/mp4":  true,
	"video/webm": true,
}

var mimeTypeExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"video/mp4":  ".mp4",
	"video/webm": ".webm",
}

func IsMimeTypeAllowed(purpose, mimeType string) bool {
	switch purpose {
	case PurposeAvatar:
		return allowedAvatarMimeTypes[mimeType]
	case PurposePostMedia:
		return allowedPostMediaMimeTypes[mimeType]
	default:
		return false
	}
}

func MaxSizeFor(purpose string) int64 {
	if purpose == PurposeAvatar {
		return MaxAvatarSize
	}
	return MaxPostMediaSize
}

func KeyPrefixFor(purpose string) string {
	if purpose == PurposeAvatar {
		return "avatars"
	}
	return "post-media"
}
