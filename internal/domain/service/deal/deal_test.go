package deal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"dealdrop/internal/domain"
	"dealdrop/internal/domain/entity"
	"dealdrop/internal/domain/value"
	"dealdrop/pkg/errcodes"
)

type fakeRepo struct {
	deals map[string]*entity.Deal
	saved []entity.Deal
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{deals: make(map[string]*entity.Deal)}
}

func (r *fakeRepo) Upsert(_ context.Context, deal *entity.Deal) error {
	r.deals[deal.ID] = deal
	return nil
}

func (r *fakeRepo) SaveAll(_ context.Context, deals []entity.Deal) error {
	r.saved = deals
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*entity.Deal, error) {
	deal, ok := r.deals[id]
	if !ok {
		return nil, domain.NewError(errcodes.DealNotFound, "deal not found")
	}

	return deal, nil
}

func (r *fakeRepo) List(_ context.Context, _ *value.Platform, _, _ int) ([]entity.Deal, error) {
	return nil, nil
}

func (r *fakeRepo) CountByPlatform(_ context.Context) (map[value.Platform]int, error) {
	return nil, nil
}

func validDeal(id string) entity.Deal {
	return entity.Deal{
		ID:         id,
		Title:      "test",
		Price:      100,
		ProductURL: "https://flipkart.com/test",
		Platform:   value.PlatformFlipkart,
	}
}

func TestSaveValidation(t *testing.T) {
	service := NewService(newFakeRepo())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*entity.Deal)
		ok     bool
	}{
		{name: "valid", mutate: func(*entity.Deal) {}, ok: true},
		{name: "empty id", mutate: func(d *entity.Deal) { d.ID = "" }},
		{name: "unknown platform", mutate: func(d *entity.Deal) { d.Platform = "ebay" }},
		{name: "zero price", mutate: func(d *entity.Deal) { d.Price = 0 }},
		{name: "negative price", mutate: func(d *entity.Deal) { d.Price = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal := validDeal("1")
			tt.mutate(&deal)

			err := service.Save(ctx, &deal)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestSaveAllDropsInvalidDeals(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	bad := validDeal("2")
	bad.Price = 0

	require.NoError(t, service.SaveAll(context.Background(), []entity.Deal{
		validDeal("1"),
		bad,
		validDeal("3"),
	}))

	require.Len(t, repo.saved, 2)
	require.Equal(t, "1", repo.saved[0].ID)
	require.Equal(t, "3", repo.saved[1].ID)
}

func TestGetByIDNotFound(t *testing.T) {
	service := NewService(newFakeRepo())

	_, err := service.GetByID(context.Background(), "404")
	require.Error(t, err)
}

func TestListPagingValidation(t *testing.T) {
	service := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := service.List(ctx, nil, 0, 0)
	require.NoError(t, err)

	_, err = service.List(ctx, nil, -1, 0)
	require.Error(t, err)

	_, err = service.List(ctx, nil, 101, 0)
	require.Error(t, err)

	_, err = service.List(ctx, nil, 10, -5)
	require.Error(t, err)
}
