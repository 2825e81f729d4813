package identity

import "unicode/utf8"

// MinPasswordStrength is the lowest accepted PasswordStrength score.
const MinPasswordStrength = 4

// PasswordStrength scores a password on a 0–6 scale:
//
//	3 if shorter than 9 characters, otherwise 4
//	+1 if it contains a character outside [a-zA-Z0-9 ]
//	+1 if it mixes upper and lower case ASCII letters
//	+1 if it contains a digit
//
// Scores of 3 or less are too weak, 4 weak, 5 medium, 6 strong.
func PasswordStrength(password string) int {
	score := 3
	if utf8.RuneCountInString(password) >= 9 {
		score = 4
	}

	var symbol, upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r == ' ':
		default:
			symbol = true
		}
	}

	if symbol {
		score++
	}
	if upper && lower {
		score++
	}
	if digit {
		score++
	}
	return score
}
