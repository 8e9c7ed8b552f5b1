package domain

// CampaignStats holds the derived per-campaign counters and rates. It is
// recomputed from scratch on every aggregation run and never persisted.
//
// The "unique" counters follow the dashboard's original contract: they count
// events, not distinct recipients, so a recipient opening three times
// contributes three unique opens. Changing that requires product sign-off.
type CampaignStats struct {
	CampaignID   string `json:"campaign_id"`
	Sent         int    `json:"sent"`
	Opens        int    `json:"opens"`
	Clicks       int    `json:"clicks"`
	Bounces      int    `json:"bounces"`
	UniqueOpens  int    `json:"unique_opens"`
	UniqueClicks int    `json:"unique_clicks"`

	// Percentages of Sent, rounded to 2 decimals; 0 when Sent is 0.
	UniqueOpenRate  float64 `json:"unique_open_rate"`
	UniqueClickRate float64 `json:"unique_click_rate"`
	BounceRate      float64 `json:"bounce_rate"`
}

// GlobalStats is the full output of one aggregation run.
//
// The global total counters intentionally differ from the per-campaign ones:
// they count every event of the given kind whether or not its message id
// resolves to a sent message, so global and per-campaign sums need not
// reconcile.
type GlobalStats struct {
	TotalSent      int `json:"total_sent"`
	TotalOpens     int `json:"total_opens"`
	TotalClicks    int `json:"total_clicks"`
	TotalBounces   int `json:"total_bounces"`
	TotalDelivered int `json:"total_delivered"`

	OpenRate   float64 `json:"open_rate"`
	ClickRate  float64 `json:"click_rate"`
	BounceRate float64 `json:"bounce_rate"`

	// Sorted by campaign id for stable output; consumers should still not
	// depend on the order.
	CampaignStats []CampaignStats `json:"campaign_stats"`
}

// ExportRow is one line of the per-message CSV extract. All fields are
// pre-rendered strings/counts so the CSV writer stays dumb.
type ExportRow struct {
	CampaignID     string
	RecipientEmail string
	Subject        string
	SentAt         string
	Delivered      string // "Yes" / "No"
	OpensCount     int
	ClicksCount    int
	BouncesCount   int
	LastOpenTime   string // formatted time or "N/A"
	LastClickTime  string
}
