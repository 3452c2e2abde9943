// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package aggregate computes statistics over stored survey responses. All
// functions are pure and accept an empty slice.
package aggregate
