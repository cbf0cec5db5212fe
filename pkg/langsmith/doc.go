// Package langsmith is a minimal client for the LangSmith ingestion API:
// dataset creation, example creation, and run (trace) submission. Only the
// write surface the uploaders need is covered.
package langsmith
