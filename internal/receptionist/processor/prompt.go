package processor

import (
	"ari-server/internal/store"
	"fmt"
	"strings"
)

var weekdayOrder = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// buildSystemPrompt assembles the assistant's instructions from the
// client record and saved configuration.
func buildSystemPrompt(client store.Client, cfg map[string]interface{}) string {
	personality := configString(cfg, "aiPersonality")
	if personality == "" {
		personality = "friendly"
	}
	businessName := configString(cfg, "businessName")
	if businessName == "" {
		businessName = client.BusinessName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional and %s AI phone receptionist for %s.\n\n", personality, businessName)

	b.WriteString("BUSINESS HOURS:\n")
	if hours, ok := cfg["businessHours"].(map[string]interface{}); ok {
		for _, day := range weekdayOrder {
			dayHours, ok := hours[day].(map[string]interface{})
			if !ok {
				continue
			}
			if closed, _ := dayHours["closed"].(bool); closed {
				fmt.Fprintf(&b, "%s: Closed\n", day)
				continue
			}
			fmt.Fprintf(&b, "%s: %v - %v\n", day, dayHours["open"], dayHours["close"])
		}
	}
	b.WriteString("\n")

	services := configString(cfg, "services")
	if services == "" {
		services = configString(cfg, "primaryServices")
	}
	if services != "" {
		b.WriteString("SERVICES WE OFFER:\n")
		b.WriteString(services)
		b.WriteString("\n\n")
	}

	if pricing := configString(cfg, "pricingInfo"); pricing != "" {
		b.WriteString("PRICING INFORMATION:\n")
		b.WriteString(pricing)
		b.WriteString("\n\n")
	}

	b.WriteString("YOUR CAPABILITIES:\n")
	b.WriteString("- Answer questions about our services and pricing\n")
	b.WriteString("- Take messages for the team\n")
	if configBool(cfg, "bookingEnabled") {
		b.WriteString("- Book appointments using the check_availability and book_appointment functions\n")
	}
	if configBool(cfg, "quoteEnabled") {
		b.WriteString("- Generate price quotes using the generate_quote function\n")
	}
	if forward := configString(cfg, "forwardTo"); forward != "" {
		fmt.Fprintf(&b, "- Transfer calls to %s when requested\n", forward)
	}
	b.WriteString("\n")

	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("1. Always be polite, professional, and helpful\n")
	b.WriteString("2. Collect caller information (name, email, phone, needs) for lead capture\n")
	b.WriteString("3. Answer questions accurately based on the information provided\n")
	b.WriteString("4. If you don't know something, be honest and offer to have someone call back\n")
	b.WriteString("5. Summarize the call and confirm next steps with the caller\n")
	b.WriteString("6. Keep responses concise and conversational\n")

	return b.String()
}
