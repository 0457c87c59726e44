package phh

import "strings"

var rankMap = map[string]string{
	"a":  "A",
	"k":  "K",
	"q":  "Q",
	"j":  "J",
	"10": "T",
	"t":  "T",
	"9":  "9",
	"8":  "8",
	"7":  "7",
	"6":  "6",
	"5":  "5",
	"4":  "4",
	"3":  "3",
	"2":  "2",
}

// NormalizeCard converts a card such as "10h" or "aS" to PHH notation ("Th", "As").
// Unknown cards are written as "??".
func NormalizeCard(card string) string {
	card = strings.TrimSpace(card)
	if card == "" {
		return ""
	}
	lowered := strings.ToLower(card)
	if lowered == "??" || lowered == "xx" || len(lowered) < 2 {
		return "??"
	}

	suit := lowered[len(lowered)-1:]
	rank, ok := rankMap[lowered[:len(lowered)-1]]
	if !ok {
		return "??"
	}
	return rank + suit
}

// JoinCards normalizes cards and concatenates them the way PHH deal actions expect.
func JoinCards(cards []string) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(NormalizeCard(c))
	}
	return b.String()
}
