// This file should be generated from the openapi specification and be named types.gen.go
package rest

// Deal Product offer from one of the supported platforms.
type Deal struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Price         int64   `json:"price"`
	OriginalPrice *int64  `json:"originalPrice,omitempty"`
	Discount      int     `json:"discount"`
	ProductURL    string  `json:"productUrl"`
	AffiliateURL  string  `json:"affiliateUrl,omitempty"`
	Platform      string  `json:"platform"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	Reviews       int     `json:"reviews,omitempty"`
	Category      string  `json:"category,omitempty"`
	IsUnlocked    bool    `json:"isUnlocked"`
	CreatedAt     string  `json:"createdAt"`
}

// PlatformCount Number of deals currently listed for a platform.
type PlatformCount struct {
	Platform string `json:"platform"`
	Count    int    `json:"count"`
}

// UnlockRequest Optional payment prefill fields for the checkout dialog.
type UnlockRequest struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Contact string `json:"contact,omitempty"`
}

// UnlockResult Outcome of an unlock attempt.
type UnlockResult struct {
	DealID       string `json:"dealId"`
	State        string `json:"state"`
	AffiliateURL string `json:"affiliateUrl,omitempty"`
	Message      string `json:"message"`
}

// Error Error model.
type Error struct {
	// Code Error code.
	Code ErrorCode `json:"code"`

	// Message Error message (for displaying in UI).
	Message string `json:"message"`
}

// ErrorCode Error code.
type ErrorCode string

// CheckoutSession Options for the payment dialog of a pending unlock.
type CheckoutSession struct {
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ThemeColor  string `json:"themeColor"`
	ScriptURL   string `json:"scriptUrl"`

	PrefillName    string `json:"prefillName,omitempty"`
	PrefillEmail   string `json:"prefillEmail,omitempty"`
	PrefillContact string `json:"prefillContact,omitempty"`
}

// CheckoutOutcome Result of the payment dialog, reported by the storefront.
type CheckoutOutcome struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"paymentId,omitempty"`
	Signature string `json:"signature,omitempty"`
	Reason    string `json:"reason,omitempty"`
}
