package cartstore

import (
	"strconv"
	"strings"
	"time"

	"printshop/utils"
)

// SessionHandle is the opaque identifier a cart is keyed by. It is not tied
// to any authenticated identity; the storefront mints one per device and
// keeps it for the lifetime of the shopper's local storage.
type SessionHandle string

const sessionPrefix = "session_"

func NewSessionHandle() SessionHandle {
	return SessionHandle(sessionPrefix +
		strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" +
		utils.Rand8BytesToBase62())
}

// Valid rejects anything that could not have been minted by NewSessionHandle.
// Handles end up in file names and DB keys, so the character set matters.
func (s SessionHandle) Valid() bool {
	if !strings.HasPrefix(string(s), sessionPrefix) || len(s) > 100 {
		return false
	}
	rest := strings.TrimPrefix(string(s), sessionPrefix)
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	if _, err := strconv.ParseInt(parts[0], 10, 64); err != nil {
		return false
	}
	for _, c := range parts[1] {
		if !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
