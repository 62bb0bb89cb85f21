package auth

const MinPasswordLength = 8

// StrongPassword reports whether p has at least MinPasswordLength characters,
// all ASCII letters or digits, with at least one of each.
func StrongPassword(p string) bool {
	if len(p) < MinPasswordLength {
		return false
	}
	var letter, digit bool
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			letter = true
		case c >= '0' && c <= '9':
			digit = true
		default:
			return false
		}
	}
	return letter && digit
}
