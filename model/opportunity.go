package model

import (
	"time"
)

// OpportunityStage is the sales stage of an opportunity.
type OpportunityStage string

// Valid opportunity stages
const (
	StageProspecting   OpportunityStage = "Prospecting"
	StageQualification OpportunityStage = "Qualification"
	StageProposal      OpportunityStage = "Proposal"
	StageNegotiation   OpportunityStage = "Negotiation"
	StageClosedWon     OpportunityStage = "Closed Won"
	StageClosedLost    OpportunityStage = "Closed Lost"
)

// OpportunityStages lists every valid stage in pipeline order.
var OpportunityStages = []OpportunityStage{
	StageProspecting,
	StageQualification,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// ValidOpportunityStage reports whether s is a known stage.
func ValidOpportunityStage(s string) bool {
	for _, stage := range OpportunityStages {
		if string(stage) == s {
			return true
		}
	}
	return false
}

// Closed reports whether the stage is terminal.
func (s OpportunityStage) Closed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// Opportunity represents a potential deal. Amount and Probability are
// the stored inputs; weighted amount and forecast category are always
// derived from them on read so they cannot go stale.
type Opportunity struct {
	ID                string           `json:"id"`
	Tenant            string           `json:"tenant"`
	Name              string           `json:"name"`
	Company           string           `json:"company"`
	Owner             string           `json:"owner"`
	Stage             OpportunityStage `json:"stage"`
	Amount            float64          `json:"amount"`
	Probability       float64          `json:"probability"` // percent, 0-100
	ExpectedCloseDate time.Time        `json:"expected_close_date"`
	Tags              []string         `json:"tags,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func (o Opportunity) RecordID() string         { return o.ID }
func (o Opportunity) RecordTenant() string     { return o.Tenant }
func (o Opportunity) RecordCreated() time.Time { return o.CreatedAt }

// WeightedAmount is the probability-weighted deal value.
func (o Opportunity) WeightedAmount() float64 {
	return o.Amount * o.Probability / 100
}

// ForecastCategory is a three-way probability classification used by
// the forecasting views.
type ForecastCategory string

const (
	ForecastCommit   ForecastCategory = "commit"
	ForecastBestCase ForecastCategory = "best-case"
	ForecastPipeline ForecastCategory = "pipeline"
)

// Probability thresholds for forecast classification.
const (
	CommitThreshold   = 70
	BestCaseThreshold = 40
)

// ForecastFor classifies a probability percentage.
func ForecastFor(probability float64) ForecastCategory {
	switch {
	case probability >= CommitThreshold:
		return ForecastCommit
	case probability >= BestCaseThreshold:
		return ForecastBestCase
	default:
		return ForecastPipeline
	}
}

// ForecastCategory classifies the opportunity's own probability.
func (o Opportunity) ForecastCategory() ForecastCategory {
	return ForecastFor(o.Probability)
}
