package server

import (
	"time"

	"dealdrop/internal/domain/entity"
	"dealdrop/internal/domain/service/unlock"
	"dealdrop/internal/domain/value"
	"dealdrop/pkg/rest"
)

// newRESTDeal renders a deal for the storefront. The affiliate URL is exposed
// only once the deal is unlocked; locked deals carry the plain product URL.
func newRESTDeal(deal entity.Deal, state value.UnlockState, affiliateURL string) rest.Deal {
	out := rest.Deal{
		ID:            deal.ID,
		Title:         deal.Title,
		Price:         deal.Price,
		OriginalPrice: deal.OriginalPrice,
		Discount:      deal.DiscountPercent(),
		ProductURL:    deal.ProductURL,
		Platform:      deal.Platform.String(),
		ImageURL:      deal.ImageURL,
		Rating:        deal.Rating,
		Reviews:       deal.Reviews,
		Category:      deal.Category,
		CreatedAt:     deal.CreatedAt.Format(time.RFC3339),
	}

	if state == value.UnlockStateUnlocked {
		out.IsUnlocked = true
		out.AffiliateURL = affiliateURL
	}

	return out
}

func newRESTUnlockResult(result unlock.Result) rest.UnlockResult {
	return rest.UnlockResult{
		DealID:       result.DealID,
		State:        result.State.String(),
		AffiliateURL: result.AffiliateURL,
		Message:      result.Message,
	}
}

func newDomainPrefill(request rest.UnlockRequest) entity.PaymentPrefill {
	return entity.PaymentPrefill{
		Name:    request.Name,
		Email:   request.Email,
		Contact: request.Contact,
	}
}
