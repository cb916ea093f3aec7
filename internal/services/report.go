package services

import (
	"context"
	"fmt"

	"sheetfolio/internal/amqp"
	applog "sheetfolio/internal/log"
)

// ReportPublisher delivers a generated report.
type ReportPublisher interface {
	PublishReport(ctx context.Context, report *amqp.ReportMessage) error
}

// ReportService turns snapshots into report messages and, when a publisher
// is configured, publishes them.
type ReportService struct {
	publisher ReportPublisher
}

// NewReportService accepts a nil publisher; reports are then built but not
// sent.
func NewReportService(publisher ReportPublisher) *ReportService {
	return &ReportService{publisher: publisher}
}

// Build stamps the snapshot's portfolio, monthly records and warnings into a
// new report message.
func (s *ReportService) Build(snap *Snapshot) *amqp.ReportMessage {
	return amqp.NewReportMessage(snap.Portfolio, snap.Monthly, snap.Warnings)
}

// Publish builds a report and publishes it. The built report is returned
// even when publishing fails.
func (s *ReportService) Publish(ctx context.Context, snap *Snapshot) (*amqp.ReportMessage, error) {
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentAMQP)
	report := s.Build(snap)

	if s.publisher == nil {
		logger.WarnContext(ctx, "AMQP publisher not configured, skipping report publish",
			applog.FieldReportID, report.ID.String())
		return report, nil
	}

	if err := s.publisher.PublishReport(ctx, report); err != nil {
		logger.ErrorContext(ctx, "Failed to publish report",
			applog.FieldOperation, applog.OpPublish,
			applog.FieldReportID, report.ID.String(),
			applog.FieldError, err)
		return report, fmt.Errorf("publish report: %w", err)
	}
	return report, nil
}
