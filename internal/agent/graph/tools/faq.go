package tools

import "strings"

// FAQEntry is a canned answer for a high-frequency support question that
// needs no tool call and no generation.
type FAQEntry struct {
	Topic    string
	Answer   string
	keywords []string
}

var faqTable = []FAQEntry{
	{
		Topic: "refund status",
		Answer: "Refunds are returned to the original payment method within 5 to 10 " +
			"business days after approval. You can follow the status of a refund in " +
			"the app under Sales > Refunds. If more than 10 business days have " +
			"passed, I can open a ticket for our team to investigate.",
		keywords: []string{"refund", "reembolso", "money back", "chargeback"},
	},
	{
		Topic: "business hours",
		Answer: "Our human support team is available Monday through Friday, " +
			"09:00 to 17:00. Outside those hours I can still open a ticket or " +
			"schedule a call for you.",
		keywords: []string{"business hours", "opening hours", "horario", "what time"},
	},
	{
		Topic: "password reset",
		Answer: "To reset your password, open the app, tap \"Forgot my password\" " +
			"on the login screen and follow the email instructions. The reset link " +
			"expires after 30 minutes.",
		keywords: []string{"password", "senha", "reset", "forgot"},
	},
	{
		Topic: "payout timing",
		Answer: "Sales are settled to your account on the next business day by " +
			"default. Instant settlement can be enabled in the app under " +
			"Settings > Receiving.",
		keywords: []string{"payout", "settlement", "receber", "when do i get"},
	},
}

// LookupFAQ returns the best-matching canned answer for the message, if any.
// Matching is keyword based and case insensitive; the entry with the most
// keyword hits wins, ties going to the earlier entry.
func LookupFAQ(message string) (FAQEntry, bool) {
	lower := strings.ToLower(message)

	best := -1
	bestHits := 0
	for i, entry := range faqTable {
		hits := 0
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = i, hits
		}
	}
	if best < 0 {
		return FAQEntry{}, false
	}
	return faqTable[best], true
}
