// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package logging builds the process logger.

Init writes human-readable lines to the console and, when a directory is
configured, JSON lines to a size-rotated file. The logger is also installed
as zap's global logger for the request middleware.
*/
package logging
