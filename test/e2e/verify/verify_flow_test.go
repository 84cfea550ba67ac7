package verify_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/hireproof/pkg/verifysdk"
	"github.com/stretchr/testify/require"
)

func TestVerificationApproved(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user, seeker := env.seeker(t, "approve@example.com")

	t.Run("starts not started", func(t *testing.T) {
		mine, err := seeker.MyVerification(ctx)
		require.NoError(t, err)
		require.Equal(t, "NOT_STARTED", mine.Status)
		require.Equal(t, user.ID, mine.UserID)
	})

	resp := env.submitDocuments(t, seeker)
	require.True(t, resp.OK)
	require.Equal(t, "PENDING", resp.Status)

	t.Run("second submission while pending", func(t *testing.T) {
		_, err := seeker.SubmitVerification(ctx, verifysdk.SubmitVerificationRequest{
			DocFrontURL: "http://minio:9000/x/a.jpg",
			DocBackURL:  "http://minio:9000/x/b.jpg",
			SelfieURL:   "http://minio:9000/x/c.jpg",
		})
		requireAPIError(t, err, http.StatusConflict, verifysdk.ErrorCodeAlreadyPending)
	})

	admin := env.adminSession(t)

	list, err := admin.ListVerifications(ctx, "PENDING", 1, 20)
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	require.Equal(t, user.ID, list.Data[0].UserID)
	require.Equal(t, 1, list.Pagination.Total)
	reqID := list.Data[0].ID

	detail, err := admin.GetVerification(ctx, reqID)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(detail.SelfieURL, ".jpg"))

	ok, err := admin.Review(ctx, reqID, "VERIFIED", "")
	require.NoError(t, err)
	require.True(t, ok.OK)

	mine, err := seeker.MyVerification(ctx)
	require.NoError(t, err)
	require.Equal(t, "VERIFIED", mine.Status)
	require.NotNil(t, mine.DecidedAt)

	t.Run("decisions are final", func(t *testing.T) {
		_, err := admin.Review(ctx, reqID, "REJECTED", "changed my mind")
		requireAPIError(t, err, http.StatusConflict, verifysdk.ErrorCodeNotPending)
	})

	t.Run("verified users cannot resubmit", func(t *testing.T) {
		_, err := seeker.SubmitVerification(ctx, verifysdk.SubmitVerificationRequest{
			DocFrontURL: detail.DocFrontURL,
			DocBackURL:  detail.DocBackURL,
			SelfieURL:   detail.SelfieURL,
		})
		requireAPIError(t, err, http.StatusConflict, verifysdk.ErrorCodeAlreadyVerified)
	})

	t.Run("decision is audited", func(t *testing.T) {
		logs, err := admin.AuditLogs(ctx, verifysdk.AuditFilter{EntityID: reqID}, 1, 20)
		require.NoError(t, err)
		require.Len(t, logs.Data, 1)
		require.Equal(t, "VERIFICATION_DECISION", logs.Data[0].Action)
		require.Equal(t, "VERIFIED", logs.Data[0].Metadata["status"])
	})

	t.Run("seeker is notified", func(t *testing.T) {
		require.Eventually(t, func() bool {
			return strings.Contains(env.logs(t), "verification_verified")
		}, 10*time.Second, 250*time.Millisecond)
	})
}

func TestVerificationRejectedThenResubmitted(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, seeker := env.seeker(t, "reject@example.com")
	env.submitDocuments(t, seeker)

	admin := env.adminSession(t)
	list, err := admin.ListVerifications(ctx, "", 1, 20)
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	reqID := list.Data[0].ID

	t.Run("rejection needs a reason", func(t *testing.T) {
		_, err := admin.Review(ctx, reqID, "REJECTED", "")
		requireAPIError(t, err, http.StatusBadRequest, verifysdk.ErrorCodeValidation)
	})

	_, err = admin.Review(ctx, reqID, "REJECTED", "selfie is blurry")
	require.NoError(t, err)

	mine, err := seeker.MyVerification(ctx)
	require.NoError(t, err)
	require.Equal(t, "REJECTED", mine.Status)
	require.Equal(t, "selfie is blurry", mine.DecisionReason)

	resp := env.submitDocuments(t, seeker)
	require.Equal(t, "PENDING", resp.Status)

	mine, err = seeker.MyVerification(ctx)
	require.NoError(t, err)
	require.Equal(t, "PENDING", mine.Status)
	require.Empty(t, mine.DecisionReason)
}

func TestSubmitRejectsMissingUploads(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, seeker := env.seeker(t, "lazy@example.com")

	grants := make([]verifysdk.PresignResponse, 0, 3)
	for _, name := range []string{"front.png", "back.png", "selfie.png"} {
		g, err := seeker.Presign(ctx, name, "image/png", "id-documents")
		require.NoError(t, err)
		grants = append(grants, g)
	}

	// Nothing was PUT, so the objects do not exist yet.
	_, err := seeker.SubmitVerification(ctx, verifysdk.SubmitVerificationRequest{
		DocFrontURL: grants[0].PublicURL,
		DocBackURL:  grants[1].PublicURL,
		SelfieURL:   grants[2].PublicURL,
	})
	requireAPIError(t, err, http.StatusBadRequest, verifysdk.ErrorCodeValidation)

	t.Run("upload must send the presigned type", func(t *testing.T) {
		status, _ := env.put(t, grants[0].UploadURL, "text/html", []byte("<html></html>"))
		require.Equal(t, http.StatusForbidden, status)

		env.upload(t, grants[0].UploadURL, "image/png", []byte("\x89PNG"))
	})

	t.Run("unsupported content type", func(t *testing.T) {
		_, err := seeker.Presign(ctx, "notes.exe", "application/x-msdownload", "id-documents")
		requireAPIError(t, err, http.StatusUnsupportedMediaType, verifysdk.ErrorCodeInvalidContentType)
	})
}
