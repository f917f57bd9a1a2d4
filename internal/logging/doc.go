// Package logging provides centralized zap-based logging for dialctl.
//
// Logging is silent by default so that log output never corrupts the
// interactive console. Set the DIALCTL_LOG_LEVEL environment variable
// (debug, info, warn, error) to enable diagnostic output on stderr.
package logging
