// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package envelope wraps save payloads in a versioned, checksummed envelope
// and validates stored envelopes on the way back.
//
// Current envelopes (schema version 2) carry a BLAKE3-256 checksum over the
// canonical payload, tagged "b3-". Version 1 envelopes carried a fingerprint
// checksum ("fp1-"); they still validate and are reported as migrated.
// Bare payloads written before envelopes existed are recognised by shape,
// passed through the save migration pipeline and reported as migrated too.
//
// Unwrap never returns an error: every outcome is a [Status], with the
// reason for a corrupt result in [Result.Err].
package envelope
