package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cardscout/card-arbitrage/internal/analysis"
	"github.com/cardscout/card-arbitrage/internal/metrics"
	"github.com/cardscout/card-arbitrage/internal/models"
)

// LeadService persists assessments worth keeping. One row per listing URL;
// a re-scan of a known listing updates the existing row in place.
type LeadService struct {
	db *gorm.DB
}

func NewLeadService(db *gorm.DB) *LeadService {
	return &LeadService{db: db}
}

// SaveAssessment upserts a lead from a pipeline assessment. The AI payload
// is optional; without a market price the profit fields stay zero.
func (s *LeadService) SaveAssessment(a analysis.CardAssessment, ai *analysis.AIAnalysis, searchTerm string) (*models.Lead, error) {
	if a.URL == "" {
		return nil, fmt.Errorf("assessment has no listing URL")
	}

	lead := models.Lead{
		ID:         uuid.New().String(),
		Title:      a.Title,
		URL:        a.URL,
		ImageURL:   a.ImageURL,
		PriceYen:   a.PriceYen,
		Condition:  a.Condition,
		Rarity:     a.Rarity,
		SetCode:    a.SetCode,
		CardNumber: a.CardNumber,
		Edition:    a.Edition,
		Region:     a.Region,
		IsValuable: a.IsValuable,
		Confidence: a.ConfidenceScore,
		Warnings:   strings.Join(a.Warnings, "\n"),
		SearchTerm: searchTerm,
	}

	if ai != nil && ai.MarketPrice > 0 {
		lead.MarketPrice = ai.MarketPrice
		lead.PotentialProfit, lead.ProfitMargin = profitEstimate(a.PriceYen, ai.MarketPrice)
		lead.Recommendation = ai.Recommendation
	}

	var existing models.Lead
	err := s.db.Where("url = ?", lead.URL).First(&existing).Error
	switch {
	case err == nil:
		lead.ID = existing.ID
		lead.CreatedAt = existing.CreatedAt
		if err := s.db.Save(&lead).Error; err != nil {
			return nil, fmt.Errorf("update lead: %w", err)
		}
	case err == gorm.ErrRecordNotFound:
		if err := s.db.Create(&lead).Error; err != nil {
			return nil, fmt.Errorf("create lead: %w", err)
		}
		metrics.LeadsStoredTotal.Inc()
	default:
		return nil, fmt.Errorf("lookup lead: %w", err)
	}

	log.Printf("Lead saved: %q (valuable=%v, confidence=%.2f)", lead.Title, lead.IsValuable, lead.Confidence)
	return &lead, nil
}

// profitEstimate converts a market price in yen into absolute profit and a
// margin relative to the asking price.
func profitEstimate(priceYen, marketPrice float64) (profit, margin float64) {
	profit = marketPrice - priceYen
	if priceYen > 0 {
		margin = profit / priceYen
	}
	return profit, margin
}

// ListLeads returns stored leads, newest first.
func (s *LeadService) ListLeads(valuableOnly bool, minConfidence float64, limit int) ([]models.Lead, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := s.db.Order("updated_at DESC").Limit(limit)
	if valuableOnly {
		query = query.Where("is_valuable = ?", true)
	}
	if minConfidence > 0 {
		query = query.Where("confidence >= ?", minConfidence)
	}

	var leads []models.Lead
	if err := query.Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// GetStats aggregates the lead table.
func (s *LeadService) GetStats() (models.LeadStats, error) {
	var stats models.LeadStats

	if err := s.db.Model(&models.Lead{}).Count(&stats.TotalLeads).Error; err != nil {
		return stats, fmt.Errorf("count leads: %w", err)
	}
	if err := s.db.Model(&models.Lead{}).Where("is_valuable = ?", true).Count(&stats.ValuableLeads).Error; err != nil {
		return stats, fmt.Errorf("count valuable leads: %w", err)
	}
	if err := s.db.Model(&models.Lead{}).Where("recommendation = ?", "BUY").Count(&stats.BuySignals).Error; err != nil {
		return stats, fmt.Errorf("count buy signals: %w", err)
	}
	if stats.TotalLeads > 0 {
		row := s.db.Model(&models.Lead{}).Select("AVG(confidence)").Row()
		if err := row.Scan(&stats.AvgConfidence); err != nil {
			return stats, fmt.Errorf("average confidence: %w", err)
		}
	}
	return stats, nil
}
