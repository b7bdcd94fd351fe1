// SPDX-License-Identifier: MIT

// Package indexnow notifies search engines of new catalog pages through the
// IndexNow protocol. It diffs the current catalog URLs against a ledger of
// previously submitted URLs, posts the difference in chunks and records the
// full current set for the next run.
package indexnow
