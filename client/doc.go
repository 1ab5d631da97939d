// Package client is the request core of apikit: a typed HTTP client for
// API test suites. It standardizes request dispatch, latency measurement,
// authentication-token handling, and JSON deserialization behind a uniform
// generic envelope.
//
// A concrete service model composes a Service per API resource and calls the
// generic verb functions:
//
//	widgets, err := client.NewService("/widgets")
//	if err != nil {
//	    ...
//	}
//
//	resp, err := client.Get[Widget](ctx, widgets, "/widgets/42")
//	if err != nil {
//	    // only connectivity-level failures end up here
//	}
//	if resp.Status == 404 {
//	    // a well-formed HTTP error is a resolved envelope, not an error
//	}
//
// Non-2xx statuses are never turned into errors. Test code asserts against
// Envelope.Status directly; only failures to complete the exchange (DNS,
// connection refused, timeout) are returned as errors.
//
// The core never retries. Callers that want retries wrap verb calls with the
// resilience package.
package client
