package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/store/drivers/sqlite"
	"github.com/aussiebroadwan/hireproof/pkg/objstore"
	"github.com/stretchr/testify/require"
)

type verifyFixture struct {
	st      *sqlite.Store
	storage *fakeStorage
	clk     *testClock
	uploads *UploadService
	svc     *VerificationService
}

func newVerifyFixture(t *testing.T) *verifyFixture {
	t.Helper()
	st := newTestStore(t)
	storage := newFakeStorage()
	clk := newTestClock()
	return &verifyFixture{
		st:      st,
		storage: storage,
		clk:     clk,
		uploads: &UploadService{Store: st, Storage: storage, Now: clk.Now},
		svc:     &VerificationService{Store: st, Storage: storage, Now: clk.Now},
	}
}

// uploadDocs issues three id-document slots for u and, when uploaded is
// true, simulates the client PUTs.
func (f *verifyFixture) uploadDocs(t *testing.T, u domain.User, uploaded bool) (domain.VerificationAssets, []string) {
	t.Helper()
	caller := domain.Principal{UserID: u.ID, Role: u.Role}

	var urls, keys []string
	for _, name := range []string{"front.jpg", "back.jpg", "selfie.png"} {
		ct := "image/jpeg"
		if name == "selfie.png" {
			ct = "image/png"
		}
		grant, err := f.uploads.IssueUploadSlot(context.Background(), caller, name, ct, domain.FolderIDDocuments)
		require.NoError(t, err)
		if uploaded {
			f.storage.put(grant.AssetKey, ct)
		}
		urls = append(urls, grant.PublicURL)
		keys = append(keys, grant.AssetKey)
	}
	return domain.VerificationAssets{FrontDocumentURL: urls[0], BackDocumentURL: urls[1], SelfieURL: urls[2]}, keys
}

func TestGetBySubjectCreatesNotStarted(t *testing.T) {
	f := newVerifyFixture(t)
	u := seedUser(t, f.st, "seeker@example.com", domain.RoleSeeker)

	vr, err := f.svc.GetBySubject(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusNotStarted, vr.Status)

	again, err := f.svc.GetBySubject(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, vr.ID, again.ID)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("moves to pending and consumes slots", func(t *testing.T) {
		f := newVerifyFixture(t)
		u := seedUser(t, f.st, "seeker@example.com", domain.RoleSeeker)
		assets, _ := f.uploadDocs(t, u, true)

		vr, err := f.svc.Submit(ctx, u.ID, assets)
		require.NoError(t, err)
		require.Equal(t, domain.StatusPending, vr.Status)
		require.Equal(t, assets, vr.Assets)

		for _, url := range assets.URLs() {
			slot, err := f.st.UploadSlots().GetUploadSlotByPublicURL(ctx, url)
			require.NoError(t, err)
			require.NotNil(t, slot.ConsumedAt)
		}
	})

	t.Run("second submit while pending leaves assets unchanged", func(t *testing.T) {
		f := newVerifyFixture(t)
		u := seedUser(t, f.st, "seeker@example.com", domain.RoleSeeker)
		first, _ := f.uploadDocs(t, u, true)
		second, _ := f.uploadDocs(t, u, true)

		_, err := f.svc.Submit(ctx, u.ID, first)
		require.NoError(t, err)

		_, err = f.svc.Submit(ctx, u.ID, second)
		require.ErrorIs(t, err, domain.ErrAlreadyPending)
		require.Equal(t, domain.KindStateConflict, domain.KindOf(err))

		vr, err := f.svc.GetBySubject(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, first, vr.Assets)

		slot, err := f.st.UploadSlots().GetUploadSlotByPublicURL(ctx, second.FrontDocumentURL)
		require.NoError(t, err)
		require.Nil(t, slot.ConsumedAt, "rejected submit consumes nothing")
	})

	t.Run("rejects foreign and reused documents", func(t *testing.T) {
		f := newVerifyFixture(t)
		u := seedUser(t, f.st, "seeker@example.com", domain.RoleSeeker)
		other := seedUser(t, f.st, "other@example.com", domain.RoleSeeker)
		mine, _ := f.uploadDocs(t, u, true)
		theirs, _ := f.uploadDocs(t, other, true)

		mixed := mine
		mixed.SelfieURL = theirs.SelfieURL
		_, err := f.svc.Submit(ctx, u.ID, mixed)
		require.Equal(t, domain.KindValidation, domain.KindOf(err))

		unknown := mine
		unknown.BackDocumentURL = "https://cdn.example.com/id-documents/x/forged.jpg"
		_, err = f.svc.Submit(ctx, u.ID, unknown)
		require.Equal(t, domain.KindValidation, domain.KindOf(err))

		dup := mine
		dup.BackDocumentURL = dup.FrontDocumentURL
		_, err = f.svc.Submit(ctx, u.ID, dup)
		require.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("missing object before and after slot expiry", func(t *testing.T) {
		f := newVerifyFixture(t)
		u := seedUser(t, f.st, "seeker@example.com", domain.RoleSeeker)
		assets, _ := f.uploadDocs(t, u, false)

		_, err := f.svc.Submit(ctx, u.ID, assets)
		require.Equal(t, domain.KindValidation, domain.KindOf(err))

		f.clk.Advance(DefaultSlotTTL + time.Second)
		_, err = f.svc.Submit(ctx, u.ID, assets)
		require.ErrorIs(t, err, domain.ErrSlotExpired)
		require.Equal(t, domain.KindSlotExpired, domain.KindOf(err))

		vr, err := f.svc.GetBySubject(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusNotStarted, vr.Status)
	})

	t.Run("stored object must match the issued type", func(t *testing.T) {
		f := newVerifyFixture(t)
		u := seedUser(t, f.st, "seeker@example.com", domain.RoleSeeker)
		assets, keys := f.uploadDocs(t, u, true)

		// The slot was issued for image/jpeg but the client sent HTML.
		f.storage.putObject(keys[0], objstore.ObjectInfo{ContentType: "text/html", Size: 512})
		_, err := f.svc.Submit(ctx, u.ID, assets)
		require.ErrorIs(t, err, domain.ErrInvalidContentType)

		f.storage.putObject(keys[0], objstore.ObjectInfo{ContentType: "image/jpeg", Size: 0})
		_, err = f.svc.Submit(ctx, u.ID, assets)
		require.Equal(t, domain.KindValidation, domain.KindOf(err))

		vr, err := f.svc.GetBySubject(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusNotStarted, vr.Status)

		f.storage.putObject(keys[0], objstore.ObjectInfo{ContentType: "Image/JPEG; charset=binary", Size: 512})
		vr, err = f.svc.Submit(ctx, u.ID, assets)
		require.NoError(t, err)
		require.Equal(t, domain.StatusPending, vr.Status)
	})

	t.Run("storage outage", func(t *testing.T) {
		f := newVerifyFixture(t)
		u := seedUser(t, f.st, "seeker@example.com", domain.RoleSeeker)
		assets, _ := f.uploadDocs(t, u, true)

		f.storage.err = errBoom
		_, err := f.svc.Submit(ctx, u.ID, assets)
		require.ErrorIs(t, err, domain.ErrDependencyUnavailable)
	})
}

func TestListPending(t *testing.T) {
	ctx := context.Background()
	f := newVerifyFixture(t)

	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		u := seedUser(t, f.st, email, domain.RoleSeeker)
		assets, _ := f.uploadDocs(t, u, true)
		_, err := f.svc.Submit(ctx, u.ID, assets)
		require.NoError(t, err, "submit %d", i)
		f.clk.Advance(time.Minute)
	}

	page, err := f.svc.ListPending(ctx, domain.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, 3, page.Total)
	require.Equal(t, 2, page.TotalPages())
	require.True(t, page.Items[0].SubmittedAt.Before(*page.Items[1].SubmittedAt))

	page, err = f.svc.ListPending(ctx, domain.PageRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	_, err = f.svc.ListPending(ctx, domain.PageRequest{Page: 1, Limit: 500})
	require.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = f.svc.Get(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
