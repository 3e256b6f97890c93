package domain

// OperatorContact is where booking notifications and callback requests go.
// It doubles as the fallback reply-to address for outbound emails.
type OperatorContact struct {
	Email string
	Phone string
}

// ContactChannel is one way a customer can reach the business. Link is
// empty for channels with no click action (e.g. the postal area).
type ContactChannel struct {
	Title   string
	Content string
	Link    string
}

// ContactChannels builds the three fixed channels shown on the contact
// page and the floating contact panel.
func ContactChannels(op OperatorContact) []ContactChannel {
	return []ContactChannel{
		{
			Title:   "Call Us",
			Content: op.Phone,
			Link:    "tel:" + stripSpaces(op.Phone),
		},
		{
			Title:   "Mail Us",
			Content: op.Email,
			Link:    "mailto:" + op.Email,
		},
		{
			Title:   "Location",
			Content: "Deccan, Pune",
		},
	}
}

func stripSpaces(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
