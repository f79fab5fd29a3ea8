package clients

import "errors"

var (
	// ErrUpstreamFetch covers transport failures and non-200 statuses from
	// the document-AI API.
	ErrUpstreamFetch = errors.New("upstream document fetch failed")
	// ErrSinkDelivery covers transport failures and non-200 statuses from
	// the delivery webhook.
	ErrSinkDelivery = errors.New("sink delivery failed")
)
