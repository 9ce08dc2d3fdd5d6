package util

import "strconv"

// IsDottedQuad checks whether a string is an IPv4 address in strict
// dotted-quad form: four dot-separated decimal octets, each 0-255.
// This is the only address shape device models may carry. CIDR notation,
// IPv6, and hostnames are all rejected; reserved or broadcast addresses
// are not special-cased.
func IsDottedQuad(s string) bool {
	octets := 0
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '.' {
			if !isOctet(s[start:i]) {
				return false
			}
			octets++
			start = i + 1
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return octets == 4
}

// isOctet reports whether s is a 1-3 digit decimal in [0,255]. Leading
// zeros are tolerated, matching what device operators actually type.
func isOctet(s string) bool {
	if len(s) < 1 || len(s) > 3 {
		return false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n >= 0 && n <= 255
}
