package processor

// defaultReceptionistConfig is the template served before a client has
// saved any receptionist settings.
func defaultReceptionistConfig(clientID string) map[string]interface{} {
	hours := func(open, close, status string) map[string]interface{} {
		return map[string]interface{}{"open": open, "close": close, "status": status}
	}

	return map[string]interface{}{
		"clientId": clientID,
		"basicInfo": map[string]interface{}{
			"businessName":     "",
			"receptionistName": "Sarah",
			"timezone":         "America/New_York",
			"language":         "english",
			"businessHours": map[string]interface{}{
				"monday":    hours("09:00", "17:00", "open"),
				"tuesday":   hours("09:00", "17:00", "open"),
				"wednesday": hours("09:00", "17:00", "open"),
				"thursday":  hours("09:00", "17:00", "open"),
				"friday":    hours("09:00", "17:00", "open"),
				"saturday":  hours("09:00", "13:00", "closed"),
				"sunday":    hours("09:00", "17:00", "closed"),
			},
		},
		"voice": map[string]interface{}{
			"provider":    "vapi",
			"type":        "female-professional",
			"accent":      "american",
			"personality": "professional",
			"speed":       1,
			"tone":        "neutral",
		},
		"knowledgeBase": map[string]interface{}{
			"services": []interface{}{},
			"faqs":     []interface{}{},
			"customResponses": map[string]interface{}{
				"greeting":   "",
				"closing":    "",
				"afterHours": "",
				"onHold":     "",
				"voicemail":  "",
			},
		},
		"callRouting": map[string]interface{}{
			"forwardNumber":      "",
			"forwardTimeout":     "30",
			"voicemailEnabled":   true,
			"duringHoursAction":  "ai-only",
			"afterHoursAction":   "voicemail",
			"afterHoursNumber":   "",
			"emergencyDetection": false,
			"emergencyNumber":    "",
			"vipNumbers":         "",
			"recordCalls":        true,
			"transcribeCalls":    true,
			"callWhisper":        false,
		},
		"appointmentBooking": map[string]interface{}{
			"enabled":          false,
			"provider":         "calendly",
			"apiKey":           "",
			"appointmentTypes": "",
			"defaultDuration":  "30",
			"bufferTime":       "0",
			"sendConfirmation": true,
			"sendSMS":          false,
			"maxPerDay":        "",
			"advanceBooking":   "30",
			"minimumNotice":    "2",
		},
		"quoteGeneration": map[string]interface{}{
			"enabled":          false,
			"strategy":         "fixed",
			"basePricing":      "",
			"taxRate":          "",
			"volumeDiscounts":  "",
			"promoCodes":       "",
			"autoApproveLimit": "",
			"requireApproval":  false,
			"autoSendEmail":    true,
			"followUpEnabled":  false,
		},
		"phoneNumber": map[string]interface{}{
			"number":             "",
			"displayOption":      "twilio",
			"recordCalls":        true,
			"transcribe":         true,
			"retention":          "90",
			"callScreening":      false,
			"spamProtection":     true,
			"allowInternational": false,
			"musicOnHold":        "default",
		},
		"integrations": map[string]interface{}{
			"crm":                "none",
			"crmApiKey":          "",
			"autoCreateContacts": false,
			"syncCallHistory":    false,
			"webhookUrl":         "",
			"slackEnabled":       false,
			"slackWebhook":       "",
			"notificationEmails": "",
			"emailFrequency":     "immediate",
			"includeTranscripts": false,
		},
	}
}
