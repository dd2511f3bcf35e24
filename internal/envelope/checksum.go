package envelope

import (
	"encoding/hex"
	"fmt"
	"strings"

	"lukechampine.com/blake3"

	"github.com/MKhiriev/go-save-sync/internal/fingerprint"
)

const checksumTagBlake3 = "b3"

// Checksum returns the current checksum of a canonical payload.
func Checksum(canonical []byte) string {
	sum := blake3.Sum256(canonical)
	return checksumTagBlake3 + "-" + hex.EncodeToString(sum[:])
}

// verifyChecksum checks checksum against the canonical payload. legacy is
// true when the checksum used an older algorithm.
func verifyChecksum(checksum string, canonical []byte) (legacy bool, err error) {
	switch {
	case strings.HasPrefix(checksum, checksumTagBlake3+"-"):
		if checksum != Checksum(canonical) {
			return false, ErrChecksumMismatch
		}
		return false, nil
	case strings.HasPrefix(checksum, fingerprint.Tag+"-"):
		if checksum != fingerprint.OfCanonical(canonical) {
			return true, ErrChecksumMismatch
		}
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownChecksum, checksumTag(checksum))
	}
}

func checksumTag(checksum string) string {
	tag, _, _ := strings.Cut(checksum, "-")
	return tag
}
