// Package kv provides an interface for implementing
// kv drivers that the record storage layers are built on.
//
// A kv plugin is a factory for root store instances. A root store
// contains zero or more regions and each region is an independent,
// ordered map from byte keys to byte values.
//
//  - Root Store
//    - Region 0
//      - key1: abc
//    - Region 1
//      - key1: def
//      - key2: xyz
//    - Region 2
//
// Regions are identified by a single byte. Their identity is fixed by
// whoever lays out the root store and is never discovered from stored
// metadata, so a root store reopened with the same layout sees exactly
// the contents it had before it was closed.
//
// Transactions are scoped to one region. There are no transactions
// that span regions: a caller that writes to two regions commits two
// independent transactions.
package kv
