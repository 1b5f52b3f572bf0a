// Package catalog talks to the cabinet catalog service.
//
// The service owns cabinet selection. For a wall of a given length and
// orientation it answers with ordered base and upper module lists
// ([Client.GenerateWall]); it can also place a single ad-hoc cabinet at
// explicit coordinates for legends and demos ([Client.PlaceCabinet]).
//
// Responses are validated before they leave this package: every module must
// have a name, a positive width and a positive depth, otherwise the call
// fails with INVALID_RESPONSE and the engine is never handed partial data.
//
// Module lists are cached by (base URL, orientation, length) through any
// [cache.Cache] backend. Transient failures (network errors, 5xx, 429) are
// retried with exponential backoff.
//
// # Supersession
//
// A planner edits wall lengths interactively, so several fetches for the
// same wall can overlap. [Tracker] keeps one outstanding request per wall:
// starting a new fetch cancels the previous one, and a response that arrives
// after a newer fetch started is discarded with SUPERSEDED.
package catalog
