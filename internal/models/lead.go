package models

import (
	"time"
)

// Lead is a listing that survived the analysis pipeline and looks worth a
// human second opinion. One row per listing URL; re-scans update in place.
type Lead struct {
	ID         string         `json:"id" gorm:"primaryKey"`
	Title      string         `json:"title" gorm:"not null;index"`
	URL        string         `json:"url" gorm:"uniqueIndex"`
	ImageURL   string         `json:"image_url"`
	PriceYen   float64        `json:"price_yen"`
	Condition  ConditionLevel `json:"condition"`
	Rarity     string         `json:"rarity"`
	SetCode    string         `json:"set_code"`
	CardNumber string         `json:"card_number"`
	Edition    string         `json:"edition"`
	Region     string         `json:"region"`
	IsValuable bool           `json:"is_valuable" gorm:"index"`
	Confidence float64        `json:"confidence"`

	// Filled in only when an AI analysis supplied a market estimate.
	MarketPrice     float64 `json:"market_price,omitempty"`
	PotentialProfit float64 `json:"potential_profit,omitempty"`
	ProfitMargin    float64 `json:"profit_margin,omitempty"`
	Recommendation  string  `json:"recommendation,omitempty"` // "BUY" or "PASS"

	Warnings   string    `json:"warnings,omitempty"` // newline-joined pipeline warnings
	SearchTerm string    `json:"search_term,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LeadStats summarizes the lead table for the dashboard.
type LeadStats struct {
	TotalLeads    int64   `json:"total_leads"`
	ValuableLeads int64   `json:"valuable_leads"`
	BuySignals    int64   `json:"buy_signals"`
	AvgConfidence float64 `json:"avg_confidence"`
}
