package domain

import (
	"path"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type UploadFolder string

const (
	FolderIDDocuments UploadFolder = "id-documents"
	FolderResumes     UploadFolder = "resumes"
	FolderJobImages   UploadFolder = "job-images"
)

// FolderPolicy says who may upload what into a folder. A nil Roles slice
// allows every role.
type FolderPolicy struct {
	Roles        []Role
	ContentTypes []string
}

// FolderPolicies is the upload allow-list.
var FolderPolicies = map[UploadFolder]FolderPolicy{
	FolderIDDocuments: {
		ContentTypes: []string{"image/jpeg", "image/png", "image/webp", "image/heic"},
	},
	FolderResumes: {
		Roles:        []Role{RoleSeeker, RoleAdmin},
		ContentTypes: []string{"application/pdf"},
	},
	FolderJobImages: {
		Roles:        []Role{RoleAdmin},
		ContentTypes: []string{"image/jpeg", "image/png", "image/webp"},
	},
}

func (p FolderPolicy) AllowsRole(r Role) bool {
	return p.Roles == nil || slices.Contains(p.Roles, r)
}

func (p FolderPolicy) AllowsContentType(ct string) bool {
	return slices.Contains(p.ContentTypes, ct)
}

var extensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/heic":      ".heic",
	"application/pdf": ".pdf",
}

// ExtensionFor maps an allowed content type to a file extension.
func ExtensionFor(contentType string) string {
	return extensions[contentType]
}

// NormalizeContentType lowercases and strips parameters.
func NormalizeContentType(ct string) string {
	base, _, _ := strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

const maxFilenameBytes = 100

// SanitizeFilename reduces a client filename to a short printable base
// name for logs.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
			return r
		case unicode.IsSpace(r):
			return '_'
		}
		return -1
	}, name)
	name = strings.TrimLeft(name, ".")
	if len(name) > maxFilenameBytes {
		cut := maxFilenameBytes
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	if name == "" {
		return "file"
	}
	return name
}

// UploadSlot is a presigned, single-use upload location.
type UploadSlot struct {
	AssetKey       string
	Folder         UploadFolder
	ContentType    string
	PublicURL      string
	IssuedToUserID string
	ExpiresAt      time.Time
	ConsumedAt     *time.Time
	CreatedAt      time.Time
}

func (s UploadSlot) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// UploadSlotGrant is what the client receives.
type UploadSlotGrant struct {
	UploadURL string
	PublicURL string
	AssetKey  string
	ExpiresAt time.Time
}
