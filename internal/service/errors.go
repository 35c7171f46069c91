package service

import "errors"

// Sentinel errors the handlers translate into HTTP statuses. Webhook
// processing is the exception: after signature verification everything is
// logged and acknowledged with 200 so Stripe does not retry forever.
var (
	ErrValidation = errors.New("invalid input")                 // 400
	ErrUpstream   = errors.New("payment provider unavailable")  // 502
	ErrPermission = errors.New("premium subscription required") // 403
	ErrNotFound   = errors.New("not found")                     // 404
)
