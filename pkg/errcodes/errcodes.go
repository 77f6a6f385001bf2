package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"
	InvalidURL          failure.ErrorCode = "InvalidURL"

	// Deal catalog.
	DealNotFound    failure.ErrorCode = "DealNotFound"
	InvalidDealID   failure.ErrorCode = "InvalidDealID"
	InvalidPlatform failure.ErrorCode = "InvalidPlatform"
	InvalidPrice    failure.ErrorCode = "InvalidPrice"

	// Unlock workflow.
	UnlockInProgress    failure.ErrorCode = "UnlockInProgress"
	PaymentNotVerified  failure.ErrorCode = "PaymentNotVerified"
	PaymentCancelled    failure.ErrorCode = "PaymentCancelled"
	CheckoutUnavailable failure.ErrorCode = "CheckoutUnavailable"
)
