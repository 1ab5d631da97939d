// Package config loads the process-wide test environment configuration.
//
// The environment is read exactly once per process (a .env file if present,
// then real environment variables) and memoized. The base URL is mandatory:
// the first service construction fails fast when it is absent.
//
// Recognized variables:
//
//	API_BASE_URL     base URL every service dispatches against (required)
//	API_TIMEOUT      default request timeout, Go duration syntax (default 30s)
//	API_AUTH_PATH    login endpoint path (default /auth/login)
//	API_TOKEN_FIELD  token field name in the login response (default token)
//	LOG_LEVEL        zerolog level for the kit's loggers (default info)
package config
