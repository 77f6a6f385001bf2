package deal

import (
	"context"
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"dealdrop/internal/domain"
	"dealdrop/internal/domain/entity"
	"dealdrop/internal/domain/value"
	"dealdrop/pkg/errcodes"
	"dealdrop/pkg/logx"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type Repository interface {
	Upsert(ctx context.Context, deal *entity.Deal) error
	SaveAll(ctx context.Context, deals []entity.Deal) error
	GetByID(ctx context.Context, id string) (*entity.Deal, error)
	List(ctx context.Context, platform *value.Platform, limit, offset int) ([]entity.Deal, error)
	CountByPlatform(ctx context.Context) (map[value.Platform]int, error)
}

// Service owns the deal catalog: validated writes from the refresher and
// reads for the storefront.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) Save(ctx context.Context, d *entity.Deal) error {
	if err := s.validate(d); err != nil {
		return err
	}

	if err := s.repo.Upsert(ctx, d); err != nil {
		return fmt.Errorf("repo.Upsert: %w", err)
	}

	return nil
}

func (s *Service) validate(d *entity.Deal) error {
	if d.ID == "" {
		return failure.NewInvalidArgumentError(
			"deal id is empty",
			failure.WithCode(errcodes.InvalidDealID),
		)
	}

	if _, err := value.ParsePlatform(d.Platform.String()); err != nil {
		return fmt.Errorf("value.ParsePlatform: %w", err)
	}

	if d.Price <= 0 {
		return failure.NewInvalidArgumentError(
			"deal price must be positive",
			failure.WithCode(errcodes.InvalidPrice),
		)
	}

	return nil
}

// SaveAll validates and stores a refreshed catalog batch. Invalid deals are
// dropped from the batch rather than failing the whole refresh.
func (s *Service) SaveAll(ctx context.Context, deals []entity.Deal) error {
	valid := make([]entity.Deal, 0, len(deals))

	for i := range deals {
		if err := s.validate(&deals[i]); err != nil {
			logger(ctx).Warn("skipping invalid deal", logx.Error(err))
			continue
		}

		valid = append(valid, deals[i])
	}

	if err := s.repo.SaveAll(ctx, valid); err != nil {
		return fmt.Errorf("repo.SaveAll: %w", err)
	}

	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*entity.Deal, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) && appErr.Code == errcodes.DealNotFound {
			return nil, failure.NewNotFoundError(
				"deal not found",
				failure.WithCode(errcodes.DealNotFound),
			)
		}

		return nil, fmt.Errorf("repo.GetByID: %w", err)
	}

	return d, nil
}

func (s *Service) List(
	ctx context.Context,
	platform *value.Platform,
	limit, offset int,
) ([]entity.Deal, error) {
	if limit == 0 {
		limit = defaultListLimit
	}

	if limit < 0 || limit > maxListLimit || offset < 0 {
		return nil, failure.NewInvalidArgumentError(
			fmt.Sprintf("invalid paging: limit=%d offset=%d", limit, offset),
			failure.WithCode(errcodes.InvalidPaging),
		)
	}

	deals, err := s.repo.List(ctx, platform, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("repo.List: %w", err)
	}

	return deals, nil
}

func (s *Service) CountByPlatform(ctx context.Context) (map[value.Platform]int, error) {
	counts, err := s.repo.CountByPlatform(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.CountByPlatform: %w", err)
	}

	return counts, nil
}
