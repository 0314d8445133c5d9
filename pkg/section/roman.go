package section

import (
	"strings"
)

var romanValues = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50,
	'C': 100, 'D': 500, 'M': 1000,
}

// RomanToInt converts a Roman numeral to its integer value using standard
// subtractive notation. Returns 0 for an empty or invalid numeral.
func RomanToInt(numeral string) int {
	numeral = strings.ToUpper(strings.TrimSpace(numeral))
	if numeral == "" {
		return 0
	}

	total := 0
	for i := 0; i < len(numeral); i++ {
		currentValue, ok := romanValues[numeral[i]]
		if !ok {
			return 0
		}
		if i+1 < len(numeral) {
			nextValue, nextOk := romanValues[numeral[i+1]]
			if nextOk && currentValue < nextValue {
				total -= currentValue
				continue
			}
		}
		total += currentValue
	}
	return total
}

// LeadingNumeral parses the Roman-numeral outline prefix of a heading like
// "IV. Judging the Work of Others". Returns 0 when the heading carries no
// parseable numeral.
func LeadingNumeral(heading string) int {
	match := outlineHeaderPattern.FindStringSubmatch(strings.TrimSpace(heading))
	if match == nil {
		return 0
	}
	return RomanToInt(match[1])
}
