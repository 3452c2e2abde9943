// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package survey implements the questionnaire wizard.

	Demographics → Behavior → Economic → Awareness → Submitted

Next from Demographics runs the gate: name, email syntax, email not already
stored, then the required choices. The first failure becomes the wizard's
error message. Any edit clears the message. Submit waits the configured
delay, then appends the record; only one submit may be outstanding.

A Registry keeps wizards by session ID and expires idle ones.
*/
package survey
