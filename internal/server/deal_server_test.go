package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"dealdrop/internal/domain/entity"
	"dealdrop/internal/domain/service/affiliate"
	"dealdrop/internal/domain/service/unlock"
	"dealdrop/internal/domain/value"
	"dealdrop/internal/infrastructure/checkout"
	"dealdrop/pkg/errcodes"
	"dealdrop/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type fakeDealService struct {
	deals map[string]*entity.Deal
}

func (s *fakeDealService) GetByID(_ context.Context, id string) (*entity.Deal, error) {
	deal, ok := s.deals[id]
	if !ok {
		return nil, failure.NewNotFoundError("deal not found", failure.WithCode(errcodes.DealNotFound))
	}

	return deal, nil
}

func (s *fakeDealService) List(_ context.Context, platform *value.Platform, _, _ int) ([]entity.Deal, error) {
	var deals []entity.Deal
	for _, deal := range s.deals {
		if platform == nil || deal.Platform == *platform {
			deals = append(deals, *deal)
		}
	}

	return deals, nil
}

func (s *fakeDealService) CountByPlatform(_ context.Context) (map[value.Platform]int, error) {
	counts := make(map[value.Platform]int)
	for _, deal := range s.deals {
		counts[deal.Platform]++
	}

	return counts, nil
}

type fakeUnlockService struct {
	states  map[string]value.UnlockState
	result  unlock.Result
	err     error
	prefill entity.PaymentPrefill
}

func (s *fakeUnlockService) Unlock(
	_ context.Context,
	_ string,
	prefill entity.PaymentPrefill,
) (unlock.Result, error) {
	s.prefill = prefill

	return s.result, s.err
}

func (s *fakeUnlockService) State(dealID string) value.UnlockState {
	if state, ok := s.states[dealID]; ok {
		return state
	}

	return value.UnlockStateLocked
}

func testServer(deals *fakeDealService, unlocks *fakeUnlockService) *httptest.Server {
	dealServer := NewDealServer(deals, unlocks, affiliate.NewTransformer())
	checkoutServer := NewCheckoutServer(checkout.NewCallbackPresenter(), checkout.DefaultScriptURL)

	router := chi.NewRouter()
	NewServer(dealServer, checkoutServer).RegisterRoutes(router)

	return httptest.NewServer(router)
}

func testDeal(id string, platform value.Platform) *entity.Deal {
	return &entity.Deal{
		ID:         id,
		Title:      "test deal",
		Price:      999,
		ProductURL: "https://www.flipkart.com/item/p/itm1",
		Platform:   platform,
		CreatedAt:  time.Now(),
	}
}

func TestGetDeals(t *testing.T) {
	deals := &fakeDealService{deals: map[string]*entity.Deal{
		"1": testDeal("1", value.PlatformFlipkart),
		"2": testDeal("2", value.PlatformAmazon),
	}}
	unlocks := &fakeUnlockService{states: map[string]value.UnlockState{
		"1": value.UnlockStateUnlocked,
	}}

	server := testServer(deals, unlocks)
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/deals")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []rest.Deal
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 2)

	byID := make(map[string]rest.Deal)
	for _, deal := range got {
		byID[deal.ID] = deal
	}

	require.True(t, byID["1"].IsUnlocked)
	require.Contains(t, byID["1"].AffiliateURL, "dl.flipkart.com")
	require.False(t, byID["2"].IsUnlocked)
	require.Empty(t, byID["2"].AffiliateURL)
}

func TestGetDealsFilteredByUnknownPlatform(t *testing.T) {
	server := testServer(&fakeDealService{}, &fakeUnlockService{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/deals?platform=ebay")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetDealsBadPaging(t *testing.T) {
	server := testServer(&fakeDealService{}, &fakeUnlockService{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/deals?limit=abc")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetDealNotFound(t *testing.T) {
	server := testServer(&fakeDealService{deals: map[string]*entity.Deal{}}, &fakeUnlockService{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/deals/404")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostUnlock(t *testing.T) {
	deals := &fakeDealService{deals: map[string]*entity.Deal{
		"1": testDeal("1", value.PlatformFlipkart),
	}}
	unlocks := &fakeUnlockService{result: unlock.Result{
		DealID:       "1",
		State:        value.UnlockStateUnlocked,
		AffiliateURL: "https://dl.flipkart.com/dl/item/p/itm1?affid=ektasunc",
		Message:      unlock.MsgPaymentSuccessful,
	}}

	server := testServer(deals, unlocks)
	defer server.Close()

	body := strings.NewReader(`{"name":"Asha","email":"asha@example.com"}`)

	resp, err := http.Post(server.URL+"/v1/deals/1/unlock", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got rest.UnlockResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "unlocked", got.State)
	require.Equal(t, unlock.MsgPaymentSuccessful, got.Message)
	require.Equal(t, "Asha", unlocks.prefill.Name)
}

func TestPostUnlockWithoutBody(t *testing.T) {
	unlocks := &fakeUnlockService{result: unlock.Result{DealID: "1", State: value.UnlockStateLocked}}

	server := testServer(&fakeDealService{}, unlocks)
	defer server.Close()

	resp, err := http.Post(server.URL+"/v1/deals/1/unlock", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, entity.PaymentPrefill{}, unlocks.prefill)
}

func TestPostUnlockInvalidEmail(t *testing.T) {
	server := testServer(&fakeDealService{}, &fakeUnlockService{})
	defer server.Close()

	body := strings.NewReader(`{"email":"not-an-email"}`)

	resp, err := http.Post(server.URL+"/v1/deals/1/unlock", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetPlatforms(t *testing.T) {
	deals := &fakeDealService{deals: map[string]*entity.Deal{
		"1": testDeal("1", value.PlatformFlipkart),
		"2": testDeal("2", value.PlatformFlipkart),
		"3": testDeal("3", value.PlatformSwiggy),
	}}

	server := testServer(deals, &fakeUnlockService{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/platforms")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []rest.PlatformCount
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, len(value.Platforms()))

	counts := make(map[string]int)
	for _, pc := range got {
		counts[pc.Platform] = pc.Count
	}

	require.Equal(t, 2, counts["flipkart"])
	require.Equal(t, 1, counts["swiggy"])
	require.Equal(t, 0, counts["amazon"])
}
