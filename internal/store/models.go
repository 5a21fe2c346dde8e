package store

import "time"

// All documents are keyed by an application-generated UUID in the id field
// (clientId for client documents), not the storage engine's native _id.

// ReceptionistService is the per-client AI receptionist service block.
type ReceptionistService struct {
	Enabled         bool                   `bson:"enabled" json:"enabled"`
	PhoneNumber     string                 `bson:"phoneNumber" json:"phoneNumber"`
	PhoneNumberID   string                 `bson:"phoneNumberId,omitempty" json:"phoneNumberId,omitempty"`
	VapiAssistantID string                 `bson:"vapiAssistantId" json:"vapiAssistantId"`
	SetupComplete   bool                   `bson:"setupComplete" json:"setupComplete"`
	Config          map[string]interface{} `bson:"config,omitempty" json:"config,omitempty"`
	KnowledgeBase   map[string]interface{} `bson:"knowledgeBase,omitempty" json:"knowledgeBase,omitempty"`
	ConfiguredAt    *time.Time             `bson:"configuredAt,omitempty" json:"configuredAt,omitempty"`
}

// AcceleratorService is the per-client booking accelerator service block.
type AcceleratorService struct {
	Enabled        bool   `bson:"enabled" json:"enabled"`
	LandingPageURL string `bson:"landingPageUrl" json:"landingPageUrl"`
	SetupComplete  bool   `bson:"setupComplete" json:"setupComplete"`
}

// LeadGenService is the per-client lead generation service block.
type LeadGenService struct {
	Enabled       bool `bson:"enabled" json:"enabled"`
	SetupComplete bool `bson:"setupComplete" json:"setupComplete"`
}

// ClientServices groups the product feature blocks of a client.
type ClientServices struct {
	AIReceptionist     ReceptionistService `bson:"aiReceptionist" json:"aiReceptionist"`
	BookingAccelerator AcceleratorService  `bson:"bookingAccelerator" json:"bookingAccelerator"`
	LeadGen            LeadGenService      `bson:"leadGen" json:"leadGen"`
}

// ClientIntegrations holds per-client export destinations.
type ClientIntegrations struct {
	SheetsEnabled       bool   `bson:"sheetsEnabled" json:"sheetsEnabled"`
	SheetsSpreadsheetID string `bson:"sheetsSpreadsheetId" json:"sheetsSpreadsheetId"`
}

// ClientAPIKeys holds per-client third-party credentials.
type ClientAPIKeys struct {
	VapiPublicKey    string `bson:"vapiPublicKey" json:"vapiPublicKey"`
	VapiPrivateToken string `bson:"vapiPrivateToken" json:"-"`
}

// Client is a managed business customer of the platform.
type Client struct {
	ClientID     string             `bson:"clientId" json:"clientId"`
	BusinessName string             `bson:"businessName" json:"businessName"`
	ContactName  string             `bson:"contactName" json:"contactName"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	Industry     string             `bson:"industry" json:"industry"`
	Website      string             `bson:"website" json:"website"`
	Address      string             `bson:"address" json:"address"`
	ContactTitle string             `bson:"contactTitle" json:"contactTitle"`
	ContactEmail string             `bson:"contactEmail" json:"contactEmail"`
	ContactPhone string             `bson:"contactPhone" json:"contactPhone"`
	LoginEmail   string             `bson:"loginEmail" json:"loginEmail"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Services     ClientServices     `bson:"services" json:"services"`
	APIKeys      ClientAPIKeys      `bson:"apiKeys" json:"apiKeys"`
	Integrations ClientIntegrations `bson:"integrations" json:"integrations"`
	Status       string             `bson:"status" json:"status"` // active, inactive, suspended
	Notes        string             `bson:"notes" json:"notes"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LeadNote is a dated note appended to a lead by dashboard users.
type LeadNote struct {
	Text    string    `bson:"text" json:"text"`
	AddedAt time.Time `bson:"addedAt" json:"addedAt"`
}

// Lead is a prospective customer captured from a voice call or a web form.
type Lead struct {
	ID            string                 `bson:"id" json:"id"`
	ClientID      string                 `bson:"clientId" json:"clientId"`
	CampaignID    string                 `bson:"campaignId,omitempty" json:"campaignId,omitempty"`
	Name          string                 `bson:"name" json:"name"`
	Email         string                 `bson:"email" json:"email"`
	Phone         string                 `bson:"phone" json:"phone"`
	Company       string                 `bson:"company" json:"company"`
	Interest      string                 `bson:"interest,omitempty" json:"interest,omitempty"`
	Budget        string                 `bson:"budget,omitempty" json:"budget,omitempty"`
	Timeline      string                 `bson:"timeline,omitempty" json:"timeline,omitempty"`
	LeadQuality   string                 `bson:"leadQuality" json:"leadQuality"`
	Notes         string                 `bson:"notes" json:"notes"`
	NoteLog       []LeadNote             `bson:"noteLog,omitempty" json:"noteLog,omitempty"`
	Status        string                 `bson:"status" json:"status"` // open, client-configurable set
	Source        string                 `bson:"source" json:"source"`
	CallID        string                 `bson:"callId,omitempty" json:"callId,omitempty"`
	Score         int                    `bson:"score" json:"score"`
	FormResponses map[string]string      `bson:"formResponses,omitempty" json:"formResponses,omitempty"`
	Tracking      map[string]interface{} `bson:"tracking,omitempty" json:"tracking,omitempty"`
	CreatedAt     time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// CampaignForm is the embedded form configuration of a campaign.
type CampaignForm struct {
	Fields         []map[string]interface{} `bson:"fields" json:"fields"`
	SubmitText     string                   `bson:"submitText" json:"submitText"`
	SuccessMessage string                   `bson:"successMessage" json:"successMessage"`
}

// CampaignAutoResponder configures the welcome email sent to new leads.
type CampaignAutoResponder struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Subject string `bson:"subject" json:"subject"`
	Body    string `bson:"body" json:"body"`
}

// CampaignStats is the embedded counter block of a campaign.
type CampaignStats struct {
	Views          int     `bson:"views" json:"views"`
	Submissions    int     `bson:"submissions" json:"submissions"`
	Conversions    int     `bson:"conversions" json:"conversions"`
	ConversionRate float64 `bson:"conversionRate" json:"conversionRate"`
}

// CampaignSettings holds campaign behavior toggles.
type CampaignSettings struct {
	LeadScoring      bool   `bson:"leadScoring" json:"leadScoring"`
	AutoQualify      bool   `bson:"autoQualify" json:"autoQualify"`
	AssignToSalesRep string `bson:"assignToSalesRep,omitempty" json:"assignToSalesRep,omitempty"`
	NotifyOnSubmit   bool   `bson:"notifyOnSubmit" json:"notifyOnSubmit"`
}

// Campaign is a landing page + form configuration used to capture leads.
type Campaign struct {
	ID             string                 `bson:"id" json:"id"`
	ClientID       string                 `bson:"clientId" json:"clientId"`
	Name           string                 `bson:"name" json:"name"`
	Description    string                 `bson:"description" json:"description"`
	Type           string                 `bson:"type" json:"type"`     // lead-capture, lead-magnet, webinar
	Status         string                 `bson:"status" json:"status"` // draft, active, paused, completed
	TargetAudience map[string]interface{} `bson:"targetAudience" json:"targetAudience"`
	LeadMagnet     map[string]interface{} `bson:"leadMagnet,omitempty" json:"leadMagnet,omitempty"`
	LandingPage    map[string]interface{} `bson:"landingPage" json:"landingPage"`
	ThankYouPage   map[string]interface{} `bson:"thankYouPage" json:"thankYouPage"`
	Form           CampaignForm           `bson:"form" json:"form"`
	AutoResponder  CampaignAutoResponder  `bson:"autoResponder" json:"autoResponder"`
	Stats          CampaignStats          `bson:"stats" json:"stats"`
	Settings       CampaignSettings       `bson:"settings" json:"settings"`
	CreatedAt      time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time              `bson:"updatedAt" json:"updatedAt"`
	PublishedAt    *time.Time             `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
}

// NotifyOnSubmit reports whether lead notifications are enabled for the
// campaign. The flag lives on the landing page block, which is what the
// public capture flow consults.
func (c *Campaign) NotifyOnSubmit() bool {
	if c.LandingPage != nil {
		if v, ok := c.LandingPage["notifyOnSubmit"].(bool); ok {
			return v
		}
	}
	return false
}

// CallTranscript is one call's transcript; partial (streaming) transcripts
// are merged in place keyed by callId until the end-of-call report lands.
type CallTranscript struct {
	ID          string            `bson:"id,omitempty" json:"id,omitempty"`
	CallID      string            `bson:"callId" json:"callId"`
	ClientID    string            `bson:"clientId" json:"clientId"`
	PhoneNumber string            `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Transcript  string            `bson:"transcript" json:"transcript"`
	Summary     string            `bson:"summary,omitempty" json:"summary,omitempty"`
	LeadData    map[string]string `bson:"leadData,omitempty" json:"leadData,omitempty"`
	DurationMS  int64             `bson:"duration" json:"duration"`
	Status      string            `bson:"status" json:"status"`
	IsPartial   bool              `bson:"isPartial,omitempty" json:"isPartial,omitempty"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Appointment is a booking captured mid-call or through the accelerator.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`
	ClientID  string    `bson:"clientId" json:"clientId"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone" json:"phone"`
	Date      string    `bson:"date" json:"date"`
	Time      string    `bson:"time" json:"time"`
	Service   string    `bson:"service" json:"service"`
	Notes     string    `bson:"notes" json:"notes"`
	Status    string    `bson:"status" json:"status"` // scheduled, completed, cancelled
	CallID    string    `bson:"callId,omitempty" json:"callId,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BillingRecord carries a client's billing terms and running counters.
// At most one record per client is in "active" status at a time; the save
// flow updates the active record in place instead of inserting a second one.
type BillingRecord struct {
	ID              string     `bson:"id" json:"id"`
	ClientID        string     `bson:"clientId" json:"clientId"`
	Type            string     `bson:"type" json:"type"` // upfront-fee, per-lead, per-appointment, subscription
	UpfrontFee      float64    `bson:"upfrontFee" json:"upfrontFee"`
	UpfrontPaid     bool       `bson:"upfrontPaid" json:"upfrontPaid"`
	PerLeadRate     float64    `bson:"perLeadRate" json:"perLeadRate"`
	LeadsDelivered  int        `bson:"leadsDelivered" json:"leadsDelivered"`
	LeadsInvoiced   int        `bson:"leadsInvoiced" json:"leadsInvoiced"`
	TotalRevenue    float64    `bson:"totalRevenue" json:"totalRevenue"`
	LastInvoiceDate *time.Time `bson:"lastInvoiceDate,omitempty" json:"lastInvoiceDate,omitempty"`
	Status          string     `bson:"status" json:"status"` // active, paused, completed
	Notes           string     `bson:"notes" json:"notes"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// AdminUser is a platform operator account.
type AdminUser struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Name         string    `bson:"name" json:"name"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
