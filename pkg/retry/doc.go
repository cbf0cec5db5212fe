// Package retry implements bounded retry with pluggable backoff strategies.
//
// A retry loop is an explicit state machine: each attempt either succeeds,
// fails with a non-retryable error, or waits out a backoff delay before the
// next attempt. Exceeding MaxAttempts surfaces the last error to the caller.
package retry
