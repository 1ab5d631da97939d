// Package resilience provides retry with exponential backoff for callers
// that want it layered around client verb calls.
//
// The client core never retries on its own; wrapping is explicit:
//
//	resp, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(),
//	    func() (*client.Envelope[Widget], error) {
//	        return client.Get[Widget](ctx, widgets, "/42")
//	    })
//
// The default predicate retries only connectivity-level failures; resolved
// envelopes, whatever their status code, are never retried.
package resilience
