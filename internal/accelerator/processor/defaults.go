package processor

import "fmt"

// defaultAcceleratorConfig is the template served before a client has
// saved any booking accelerator settings.
func defaultAcceleratorConfig(clientID, webAppURI string) map[string]interface{} {
	benefit := func(id int, icon, title, description string) map[string]interface{} {
		return map[string]interface{}{"id": id, "icon": icon, "title": title, "description": description}
	}
	field := func(id int, fieldType, label, placeholder string) map[string]interface{} {
		return map[string]interface{}{"id": id, "type": fieldType, "label": label, "required": true, "placeholder": placeholder}
	}

	return map[string]interface{}{
		"clientId": clientID,
		"landingPage": map[string]interface{}{
			"template": "professional",
			"hero": map[string]interface{}{
				"headline":    "Book Your Appointment Today",
				"subheadline": "Schedule a consultation with our expert team",
				"ctaText":     "Book Now",
				"showVideo":   false,
			},
			"benefits": []interface{}{
				benefit(1, "check", "Fast & Easy", "Book in under 2 minutes"),
				benefit(2, "calendar", "Flexible Scheduling", "Choose time that works for you"),
				benefit(3, "shield", "Secure & Private", "Your data is protected"),
			},
			"testimonials": []interface{}{},
			"branding": map[string]interface{}{
				"primaryColor":   "#1e3a8a",
				"secondaryColor": "#14b8a6",
				"fontFamily":     "Inter",
			},
		},
		"formFields": []interface{}{
			field(1, "text", "Full Name", "John Doe"),
			field(2, "email", "Email", "john@example.com"),
			field(3, "tel", "Phone", "+1 (555) 000-0000"),
		},
		"formSettings": map[string]interface{}{
			"layout":           "single-column",
			"submitButtonText": "Book Appointment",
			"successMessage":   "Thank you! We'll be in touch soon.",
			"multiStep":        false,
			"showProgressBar":  false,
		},
		"qualification": map[string]interface{}{
			"enabled":                false,
			"criteria":               []interface{}{},
			"scoringEnabled":         false,
			"qualificationThreshold": 50,
		},
		"calendar": map[string]interface{}{
			"provider": "calendly",
			"availability": map[string]interface{}{
				"bufferTime":     15,
				"maxPerDay":      10,
				"advanceBooking": 30,
				"minimumNotice":  24,
			},
			"meetingTypes": []interface{}{},
		},
		"automation": map[string]interface{}{
			"emailSequences": map[string]interface{}{
				"confirmation": map[string]interface{}{"enabled": true, "subject": "Your appointment is confirmed", "body": ""},
				"reminder":     map[string]interface{}{"enabled": true, "timing": "24h", "subject": "Reminder: Your appointment is tomorrow", "body": ""},
				"followUp":     map[string]interface{}{"enabled": false, "timing": "1d", "subject": "Thank you for your time", "body": ""},
			},
			"smsSequences": map[string]interface{}{
				"confirmation": map[string]interface{}{"enabled": false, "message": ""},
				"reminder":     map[string]interface{}{"enabled": false, "message": ""},
			},
		},
		"leadManagement": map[string]interface{}{
			"statuses": []interface{}{"new", "contacted", "qualified", "appointment-set", "converted", "lost"},
		},
		"publicUrl": fmt.Sprintf("%s/book/%s", webAppURI, clientID),
		"analytics": map[string]interface{}{
			"enabled": true,
		},
	}
}
