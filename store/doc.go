// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store owns the persisted collection of survey responses.

The whole collection is stored as one versioned JSON payload under a single
key. Append rejects an email that is already stored, comparing
case-insensitively, under the same lock as the write. A payload that cannot
be read is treated as an empty collection. The unversioned array layout is
migrated on read.

Subscribe registers a listener that receives a storage-update event after
every successful Append or ClearAll.
*/
package store
