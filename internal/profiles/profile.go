// Package profiles keeps the user's display name and avatar.
package profiles

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxNameLength = 100
	// AvatarsURLPrefix is the public path avatars are served under.
	AvatarsURLPrefix = "/avatars/"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidName     = errors.New("invalid profile name")
	ErrInvalidAvatar   = errors.New("unsupported avatar file type")
)

var avatarExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

// AvatarFileName builds the stored file name: <user id>-<unix millis>.<ext>.
func AvatarFileName(userID, uploadedName string, now time.Time) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(uploadedName), "."))
	if !avatarExtensions[ext] {
		return "", ErrInvalidAvatar
	}
	return fmt.Sprintf("%s-%d.%s", userID, now.UnixMilli(), ext), nil
}

// avatarFileFromURL returns the stored file name behind an avatar URL, if it is one of ours.
func avatarFileFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, AvatarsURLPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, AvatarsURLPrefix)
	return name, name != ""
}
