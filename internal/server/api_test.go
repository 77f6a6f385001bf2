package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"dealdrop/internal/domain/entity"
	"dealdrop/internal/domain/service/unlock"
	"dealdrop/internal/domain/value"
	"dealdrop/pkg/rest"
	"dealdrop/pkg/tests"
)

// Exercises the public surface end to end through a generic API client, the
// way an external consumer would.
func TestAPISurface(t *testing.T) {
	random := tests.NewRandomizer()

	deal := testDeal("1", value.PlatformAmazon)
	deal.Rating = 1 + 4*random.Float64()

	deals := &fakeDealService{deals: map[string]*entity.Deal{"1": deal}}
	unlocks := &fakeUnlockService{result: unlock.Result{
		DealID:  "1",
		State:   value.UnlockStateLocked,
		Message: unlock.MsgPaymentFailed,
	}}

	server := testServer(deals, unlocks)
	defer server.Close()

	client := tests.NewAPIClient(server.URL, server.Client())
	ctx := context.Background()

	var listed []rest.Deal

	resp, err := client.Get(ctx, "/v1/deals", http.Header{}, &listed, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, listed, 1)
	require.InDelta(t, deal.Rating, listed[0].Rating, 1e-9)

	var got rest.Deal

	resp, err = client.Get(ctx, "/v1/deals/1", http.Header{}, &got, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "1", got.ID)
	require.False(t, got.IsUnlocked)

	var result rest.UnlockResult

	resp, err = client.PostJSON(ctx, "/v1/deals/1/unlock", http.Header{}, `{}`, &result, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "locked", result.State)
	require.Equal(t, unlock.MsgPaymentFailed, result.Message)

	var platforms []rest.PlatformCount

	resp, err = client.Get(ctx, "/v1/platforms", http.Header{}, &platforms, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, platforms, len(value.Platforms()))
}
