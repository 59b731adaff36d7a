package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stampcard/loyalty/internal/loyalty/store"
	"github.com/stampcard/loyalty/internal/loyalty/store/drivers/sqlite"
	"github.com/stampcard/loyalty/pkg/cryptox"
	"github.com/stampcard/loyalty/pkg/idx"
	"github.com/stampcard/loyalty/pkg/scantoken"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test-*")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(dir + "/pepper")

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestCodec(t *testing.T) *scantoken.Codec {
	t.Helper()

	cipher, err := scantoken.NewCipher(scantoken.AlgorithmECB, "test-scanner-secret")
	require.NoError(t, err)
	return scantoken.NewCodec(cipher, 0)
}

func seedUser(t *testing.T, st store.Store, codec *scantoken.Codec, username string, active bool) domain.User {
	t.Helper()
	ctx := context.Background()

	user := domain.User{
		ID:       idx.New().String(),
		Username: username,
		Role:     domain.RoleMember,
		Active:   active,
	}
	issued, err := codec.Encode(user.ID)
	require.NoError(t, err)
	user.QRToken = issued.Token

	require.NoError(t, st.Users().CreateUser(ctx, user))
	return user
}

func seedVendor(t *testing.T, st store.Store, name string) domain.Vendor {
	t.Helper()

	vendor := domain.Vendor{ID: idx.New().String(), Name: name}
	require.NoError(t, st.Vendors().CreateVendor(context.Background(), vendor))
	return vendor
}

func seedValidator(t *testing.T, st store.Store, vendorID, userID string) domain.Validator {
	t.Helper()

	v := domain.Validator{ID: idx.New().String(), UserID: userID, VendorID: vendorID}
	require.NoError(t, st.Validators().CreateValidator(context.Background(), v))
	return v
}

func seedPromotion(t *testing.T, st store.Store, vendorID, title string, startsAt, endsAt time.Time, active bool) domain.Promotion {
	t.Helper()

	p := domain.Promotion{
		ID:       idx.New().String(),
		VendorID: vendorID,
		Title:    title,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Active:   active,
	}
	require.NoError(t, st.Promotions().CreatePromotion(context.Background(), p))
	return p
}
