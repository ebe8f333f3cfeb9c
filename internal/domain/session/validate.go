package session

import "strings"

// blockedValues are identifiers rejected outright. The sentinel is blocked
// so a username can never collide with the deck's end marker.
var blockedValues = map[string]bool{
	"null":   true,
	"admin":  true,
	"root":   true,
	"system": true,
}

// ValidUsername accepts non-empty case-insensitive alphanumeric strings
// that do not match a blocked value.
func ValidUsername(username string) bool {
	if username == "" {
		return false
	}
	if blockedValues[strings.ToLower(strings.TrimSpace(username))] {
		return false
	}
	return alphanumeric(username)
}

// ValidSessionCode accepts 6-character case-insensitive alphanumeric codes
// that do not match a blocked value.
func ValidSessionCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	if blockedValues[strings.ToLower(strings.TrimSpace(code))] {
		return false
	}
	return alphanumeric(code)
}

func alphanumeric(s string) bool {
	for _, ch := range strings.ToLower(s) {
		if (ch < 'a' || ch > 'z') && (ch < '0' || ch > '9') {
			return false
		}
	}
	return true
}
