// Package watchlist maintains a personal list of market symbols and turns a raw
// quote feed into display-ready figures.
//
// The core functionalities include:
//   - Entry encoding: every watchlist entry has a compact token form, "code" or
//     "code-count", used by both external representations.
//   - List management: an ordered list of entries with add, remove, update and
//     move operations, unique by case-insensitive code.
//   - Reconciliation: keeping the list consistent between a shareable link,
//     a persisted key/value store and the in-memory list.
//   - Feed decoding: parsing a multi-symbol feed payload into one record per
//     requested code, preserving the request order.
//   - Derivation: computing change, percent change, position profit and
//     human-readable volume with exact decimal rounding.
//
// This package serves as the foundational logic for the `wl` command-line
// tool and its HTTP server.
package watchlist
