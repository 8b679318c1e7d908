package validator

// MaxUsernameLength is GitHub's limit on login length.
const MaxUsernameLength = 39

// ValidFormat reports whether s is a well-formed GitHub login: ASCII letters,
// digits and hyphens, starting with an alphanumeric, no leading, trailing or
// consecutive hyphens, at most 39 characters.
//
// Equivalent to ^[a-zA-Z0-9](?:[a-zA-Z0-9]|-(?=[a-zA-Z0-9])){0,38}$, which RE2
// cannot express because of the lookahead.
func ValidFormat(s string) bool {
	if len(s) == 0 || len(s) > MaxUsernameLength {
		return false
	}
	if !isAlnum(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if isAlnum(c) {
			continue
		}
		if c != '-' {
			return false
		}
		if i+1 >= len(s) || !isAlnum(s[i+1]) {
			return false
		}
	}
	return true
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
