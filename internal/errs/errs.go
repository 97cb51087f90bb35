// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures..
// (e.g. ValidationError for request input or HTTPError for handler failures)..
// to ensure the client receive meaningful, actionable, and consistent..
// error messages.
//
// - Return consistent error shapes to API clients (JSON): {"detail": ...}.
// - Support field-level validation errors, all offending fields in one payload.
// - Provide errors that play nicely with Go's standard errors package.
package errs
