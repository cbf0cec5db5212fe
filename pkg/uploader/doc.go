// Package uploader pushes a scraped archive into LangSmith in two shapes:
// a labeled dataset (one example per post) and a tracing project (one
// conversation-style run per post). Individual upload failures are logged
// and skipped; only archive-level problems abort an upload.
package uploader
