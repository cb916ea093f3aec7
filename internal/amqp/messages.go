package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"sheetfolio/internal/core"
)

// ReportMessage is the JSON body published for one generated report.
type ReportMessage struct {
	ID          uuid.UUID               `json:"id"`
	GeneratedAt time.Time               `json:"generatedAt"`
	Portfolio   []core.PortfolioItem    `json:"portfolio"`
	Monthly     []core.AggregatedRecord `json:"monthly"`
	Warnings    []core.Warning          `json:"warnings,omitempty"`
}

// NewReportMessage stamps a report with a fresh ID and the current time.
func NewReportMessage(portfolio []core.PortfolioItem, monthly []core.AggregatedRecord, warnings core.Diagnostics) *ReportMessage {
	return &ReportMessage{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Portfolio:   portfolio,
		Monthly:     monthly,
		Warnings:    warnings,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportMessageFromJSON decodes a published report.
func ReportMessageFromJSON(data []byte) (*ReportMessage, error) {
	var msg ReportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
