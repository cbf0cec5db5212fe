// Package moltbook provides a client for the Moltbook listing API.
//
// The client fetches pages of top posts via offset pagination and maps
// HTTP failures to typed errors so the retry layer can distinguish
// transient conditions (timeouts, 5xx, rate limits) from fatal ones
// (auth rejection, unparseable envelopes).
package moltbook
