// Package testutil provides lifecycle helpers for test components such as
// the mockapi server.
//
//	srv := mockapi.New(mockapi.Config{})
//	testutil.T(t).Setup(srv)
//	// srv is stopped automatically when the test ends
package testutil
