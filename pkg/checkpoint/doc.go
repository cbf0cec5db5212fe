// Package checkpoint provides crash-safe persistence of scrape progress.
//
// A checkpoint records the next pagination offset and every post collected
// so far. It is rewritten after each successful batch, so an interrupted
// run loses at most one in-flight batch. Writes go through a temp file and
// an atomic rename to keep the file readable across crashes mid-write.
package checkpoint
