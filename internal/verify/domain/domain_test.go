package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/stretchr/testify/require"
)

func TestErrorsMatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("submit: %w", domain.ErrAlreadyPending)
	require.ErrorIs(t, err, domain.ErrAlreadyPending)
	require.NotErrorIs(t, err, domain.ErrAlreadyVerified)
	require.Equal(t, domain.KindStateConflict, domain.KindOf(err))

	dep := domain.Unavailable("object storage", errors.New("timeout"))
	require.ErrorIs(t, dep, domain.ErrDependencyUnavailable)
	require.Equal(t, domain.KindDependencyUnavailable, domain.KindOf(dep))

	require.Equal(t, domain.KindInternal, domain.KindOf(errors.New("plain")))
	require.Equal(t, domain.KindValidation, domain.KindOf(domain.Validation("bad %s", "input")))
}

func TestParseEnums(t *testing.T) {
	r, err := domain.ParseRole(" admin ")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, r)

	_, err = domain.ParseRole("superuser")
	require.Equal(t, domain.KindValidation, domain.KindOf(err))

	st, err := domain.ParseVerificationStatus("pending")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, st)

	_, err = domain.ParseVerificationStatus("DONE")
	require.Error(t, err)
}

func TestStatusPredicates(t *testing.T) {
	require.True(t, domain.StatusNotStarted.CanSubmit())
	require.True(t, domain.StatusRejected.CanSubmit())
	require.False(t, domain.StatusPending.CanSubmit())
	require.False(t, domain.StatusVerified.CanSubmit())

	require.True(t, domain.StatusVerified.IsDecision())
	require.True(t, domain.StatusRejected.IsDecision())
	require.False(t, domain.StatusPending.IsDecision())
}

func TestVerificationAssetsValidate(t *testing.T) {
	ok := domain.VerificationAssets{
		FrontDocumentURL: "https://cdn.test/id-documents/u/1.jpg",
		BackDocumentURL:  "https://cdn.test/id-documents/u/2.jpg",
		SelfieURL:        "https://cdn.test/id-documents/u/3.jpg",
	}
	require.NoError(t, ok.Validate())

	missing := ok
	missing.SelfieURL = " "
	require.Error(t, missing.Validate())

	relative := ok
	relative.BackDocumentURL = "/id-documents/u/2.jpg"
	require.Error(t, relative.Validate())

	dup := ok
	dup.SelfieURL = ok.FrontDocumentURL
	require.Error(t, dup.Validate())
}

func TestFolderPolicies(t *testing.T) {
	id := domain.FolderPolicies[domain.FolderIDDocuments]
	require.True(t, id.AllowsRole(domain.RoleEmployer))
	require.True(t, id.AllowsContentType("image/heic"))
	require.False(t, id.AllowsContentType("application/pdf"))

	resumes := domain.FolderPolicies[domain.FolderResumes]
	require.False(t, resumes.AllowsRole(domain.RoleEmployer))
	require.True(t, resumes.AllowsRole(domain.RoleSeeker))

	jobs := domain.FolderPolicies[domain.FolderJobImages]
	require.False(t, jobs.AllowsRole(domain.RoleSeeker))
	require.True(t, jobs.AllowsRole(domain.RoleAdmin))

	require.Equal(t, "image/png", domain.NormalizeContentType(" Image/PNG; charset=binary"))
	require.Equal(t, ".jpg", domain.ExtensionFor("image/jpeg"))
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"passport.jpg":            "passport.jpg",
		"../../etc/passwd":        "passwd",
		`C:\Users\me\front id.png`: "front_id.png",
		"...":                     "file",
		"":                        "file",
		"ok<script>.png":          "okscript.png",
	}
	for in, want := range tests {
		require.Equal(t, want, domain.SanitizeFilename(in), in)
	}
}

func TestSanitizeFilenameTruncatesOnRuneBoundary(t *testing.T) {
	tests := []struct {
		in      string
		wantLen int
	}{
		{strings.Repeat("a", 150), 100},
		{"a" + strings.Repeat("é", 50), 99},
		{strings.Repeat("日", 34), 99},
		{strings.Repeat("é", 50), 100},
	}
	for _, tt := range tests {
		got := domain.SanitizeFilename(tt.in)
		require.True(t, utf8.ValidString(got), "%q", got)
		require.Len(t, got, tt.wantLen)
		require.True(t, strings.HasPrefix(tt.in, got))
	}
}

func TestAdminSessionAuthorize(t *testing.T) {
	require.ErrorIs(t, domain.AdminSession{Role: domain.RoleSeeker, MFAComplete: true}.Authorize(), domain.ErrUnauthorized)
	require.ErrorIs(t, domain.AdminSession{Role: domain.RoleAdmin}.Authorize(), domain.ErrMFARequired)
	require.NoError(t, domain.AdminSession{Role: domain.RoleAdmin, MFAComplete: true}.Authorize())
}

func TestPageRequest(t *testing.T) {
	p, err := domain.PageRequest{}.Normalize()
	require.NoError(t, err)
	require.Equal(t, domain.PageRequest{Page: 1, Limit: domain.DefaultPageLimit}, p)
	require.Equal(t, 0, p.Offset())

	p, err = domain.PageRequest{Page: 3, Limit: 10}.Normalize()
	require.NoError(t, err)
	require.Equal(t, 20, p.Offset())

	_, err = domain.PageRequest{Page: -1}.Normalize()
	require.Error(t, err)
	_, err = domain.PageRequest{Limit: 101}.Normalize()
	require.Error(t, err)

	require.Equal(t, 3, domain.Page[int]{Total: 41, Limit: 20}.TotalPages())
	require.Equal(t, 0, domain.Page[int]{Total: 0, Limit: 20}.TotalPages())
}
