package customers

const (
	TagNew       = "New"
	TagRegular   = "Regular"
	TagVIP       = "VIP"
	TagPremium   = "Premium"
	TagHighValue = "High Value"

	// HighValueSpentCents is the lifetime spend above which a customer is tagged High Value.
	HighValueSpentCents int64 = 50000
)

// LoyaltyTags derives the tag set for a returning customer from their lifetime totals.
func LoyaltyTags(totalOrders int, totalSpentCents int64) []string {
	tags := []string{}
	switch {
	case totalOrders >= 10:
		tags = append(tags, TagPremium, TagVIP)
	case totalOrders >= 5:
		tags = append(tags, TagVIP)
	case totalOrders >= 2:
		tags = append(tags, TagRegular)
	}
	if totalSpentCents > HighValueSpentCents {
		tags = append(tags, TagHighValue)
	}
	return tags
}
