// Package scraper orchestrates the Moltbook scrape run.
//
// The run loop is single-threaded: one outstanding request at a time,
// one checkpoint write after each processed batch. Transient fetch
// failures are retried with exponential backoff; exhausting retries
// aborts the run but leaves the last checkpoint intact, so the next
// invocation resumes where this one stopped.
package scraper
