// Package mockapi is a small in-process REST API used to exercise the kit
// end to end: a JWT-issuing login endpoint and a token-protected widgets
// resource with the usual CRUD surface.
//
// It implements testutil.Component so suites can manage it with
// testutil.T(t).Setup. The server binds an ephemeral port by default;
// point services at URL() after Start.
package mockapi
