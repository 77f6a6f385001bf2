package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"dealdrop/internal/domain/entity"
	"dealdrop/internal/domain/service/unlock"
	"dealdrop/internal/domain/value"
	"dealdrop/pkg/errcodes"
	"dealdrop/pkg/httpx/reply"
	"dealdrop/pkg/httpx/req"
	"dealdrop/pkg/lox"
	"dealdrop/pkg/rest"
)

type dealService interface {
	GetByID(ctx context.Context, id string) (*entity.Deal, error)
	List(ctx context.Context, platform *value.Platform, limit, offset int) ([]entity.Deal, error)
	CountByPlatform(ctx context.Context) (map[value.Platform]int, error)
}

type unlockService interface {
	Unlock(ctx context.Context, dealID string, prefill entity.PaymentPrefill) (unlock.Result, error)
	State(dealID string) value.UnlockState
}

type linkTransformer interface {
	Transform(platform value.Platform, originalURL string) string
}

type DealServer struct {
	dealService   dealService
	unlockService unlockService
	transformer   linkTransformer
}

func NewDealServer(
	dealService dealService,
	unlockService unlockService,
	transformer linkTransformer,
) DealServer {
	return DealServer{
		dealService:   dealService,
		unlockService: unlockService,
		transformer:   transformer,
	}
}

func (s DealServer) getV1Deals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var platform *value.Platform

	if raw := r.URL.Query().Get("platform"); raw != "" {
		p, err := value.ParsePlatform(raw)
		if err != nil {
			return fmt.Errorf("value.ParsePlatform: %w", err)
		}

		platform = &p
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		return err
	}

	offset, err := queryInt(r, "offset")
	if err != nil {
		return err
	}

	deals, err := s.dealService.List(ctx, platform, limit, offset)
	if err != nil {
		return fmt.Errorf("dealService.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(deals, s.restDeal))

	return nil
}

func (s DealServer) getV1Deal(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	deal, err := s.dealService.GetByID(ctx, r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("dealService.GetByID: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, s.restDeal(*deal))

	return nil
}

func (s DealServer) postV1DealUnlock(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.UnlockRequest

	// The prefill body is optional.
	if r.ContentLength > 0 {
		if err := req.Read(r, &request); err != nil {
			return fmt.Errorf("req.Read: %w", err)
		}
	}

	result, err := s.unlockService.Unlock(ctx, r.PathValue("id"), newDomainPrefill(request))
	if err != nil {
		return fmt.Errorf("unlockService.Unlock: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTUnlockResult(result))

	return nil
}

func (s DealServer) getV1Platforms(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	counts, err := s.dealService.CountByPlatform(ctx)
	if err != nil {
		return fmt.Errorf("dealService.CountByPlatform: %w", err)
	}

	response := lox.Map(value.Platforms(), func(p value.Platform) rest.PlatformCount {
		return rest.PlatformCount{
			Platform: p.String(),
			Count:    counts[p],
		}
	})

	reply.JSON(ctx, w, http.StatusOK, response)

	return nil
}

func (s DealServer) restDeal(deal entity.Deal) rest.Deal {
	state := s.unlockService.State(deal.ID)

	var affiliateURL string
	if state == value.UnlockStateUnlocked {
		affiliateURL = s.transformer.Transform(deal.Platform, deal.ProductURL)
	}

	return newRESTDeal(deal, state, affiliateURL)
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("strconv.Atoi(%s): %w", name, err),
			failure.WithCode(errcodes.InvalidPaging),
		)
	}

	return v, nil
}
