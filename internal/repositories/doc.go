// Package repositories implements data access for the library cache.
//
// The cache holds the result of the last library scan so startup can skip
// re-probing every file's tags. It is replaceable wholesale: a scan writes
// the full track list in one transaction, and readers get tracks back in
// their original scan order.
package repositories
