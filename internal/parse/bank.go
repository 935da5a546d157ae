package parse

import "strings"

// bankKeywords maps an uppercase sender/body substring to the display name of
// the issuing bank. Kept as an ordered slice, not a map: the first entry that
// matches wins, so detection is deterministic.
var bankKeywords = []struct {
	keyword string
	display string
}{
	{"HDFC", "HDFC"},
	{"ICICI", "ICICI"},
	{"SBI", "SBI"},
	{"AXIS", "Axis"},
	{"KOTAK", "Kotak"},
	{"CITI", "Citi"},
	{"AMEX", "Amex"},
	{"INDUS", "IndusInd"},
	{"YES", "Yes Bank"},
	{"RBL", "RBL"},
	{"IDFC", "IDFC"},
	{"FEDERAL", "Federal"},
	{"HSBC", "HSBC"},
	{"SCB", "SC"},
	{"ONECARD", "OneCard"},
	{"SLICE", "Slice"},
}

// DefaultBank is the label used when no known bank keyword is present.
const DefaultBank = "Bank"

// DetectBank returns the display name of the first known bank keyword found
// in the sender or body, or DefaultBank when none matches.
func DetectBank(sender, body string) string {
	combined := strings.ToUpper(sender + " " + body)
	for _, b := range bankKeywords {
		if strings.Contains(combined, b.keyword) {
			return b.display
		}
	}
	return DefaultBank
}
