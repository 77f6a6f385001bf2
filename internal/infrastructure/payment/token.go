package payment

import "context"

// StaticToken is a fixed bearer token for the payment backend.
type StaticToken string

func (t StaticToken) Authenticate(context.Context) error { return nil }

func (t StaticToken) BearerToken() string { return string(t) }
