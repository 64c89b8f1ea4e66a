package service

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-tracker/internal/dto"
	"github.com/noah-isme/classroom-tracker/internal/models"
	appErrors "github.com/noah-isme/classroom-tracker/pkg/errors"
	"github.com/noah-isme/classroom-tracker/pkg/export"
	"github.com/noah-isme/classroom-tracker/pkg/storage"
)

const reportFilePrefix = "reporte_asistencia_"

type recordsSource interface {
	Snapshot() models.Records
}

type reportStorage interface {
	Save(filename string, data []byte) (string, error)
	Read(filename string) ([]byte, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ReportServiceConfig governs labels, download URLs and file retention.
type ReportServiceConfig struct {
	Locale          string
	DownloadBaseURL string
	Retention       time.Duration
	CleanupInterval time.Duration
}

// RenderedReport is a CSV report ready to be sent or stored.
type RenderedReport struct {
	Filename string
	Payload  []byte
	Rows     int
}

// ReportDownload holds a resolved stored report.
type ReportDownload struct {
	Filename  string
	Payload   []byte
	ExpiresAt time.Time
}

// ReportService renders the attendance CSV and manages stored copies behind signed URLs.
type ReportService struct {
	source   recordsSource
	exporter *export.CSVExporter
	storage  reportStorage
	signer   *storage.SignedURLSigner
	ids      IDGenerator
	metrics  *MetricsService
	logger   *zap.Logger
	cfg      ReportServiceConfig
	labels   ReportLabels
	now      func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(source recordsSource, store reportStorage, signer *storage.SignedURLSigner, ids IDGenerator, metrics *MetricsService, logger *zap.Logger, cfg ReportServiceConfig) *ReportService {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if cfg.DownloadBaseURL == "" {
		cfg.DownloadBaseURL = "/api/v1/reports/download"
	}
	return &ReportService{
		source:   source,
		exporter: export.NewCSVExporter(),
		storage:  store,
		signer:   signer,
		ids:      ids,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
		labels:   LabelsFor(cfg.Locale),
		now:      time.Now,
	}
}

// WithClock overrides the clock used for the file date.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Filename returns the download name for a report produced today.
func (s *ReportService) Filename() string {
	return reportFilePrefix + Today(s.now()) + ".csv"
}

// Render builds the CSV from the current records.
func (s *ReportService) Render(ctx context.Context) (*RenderedReport, error) {
	dataset, err := ExportReport(s.source.Snapshot(), s.labels)
	if err != nil {
		if errors.Is(err, appErrors.ErrNothingToExport) {
			s.metrics.RecordExport(OutcomeEmpty)
			return nil, err
		}
		s.metrics.RecordExport(OutcomeFailure)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build report")
	}
	payload, err := s.exporter.Render(dataset)
	if err != nil {
		s.metrics.RecordExport(OutcomeFailure)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	s.metrics.RecordExport(OutcomeSuccess)
	return &RenderedReport{Filename: s.Filename(), Payload: payload, Rows: len(dataset.Rows)}, nil
}

// Generate renders the report, stores it and returns a signed download URL.
func (s *ReportService) Generate(ctx context.Context) (*dto.ReportResponse, error) {
	if s.storage == nil || s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "report storage is not configured")
	}
	report, err := s.Render(ctx)
	if err != nil {
		return nil, err
	}

	reportID := s.ids.NewID(prefixReport)
	relPath := path.Join(reportID, report.Filename)
	if _, err := s.storage.Save(relPath, report.Payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store report")
	}
	token, expiresAt, err := s.signer.Generate(reportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign report url")
	}

	s.logger.Info("report stored", zap.String("report_id", reportID), zap.Int("rows", report.Rows))
	return &dto.ReportResponse{
		ID:        reportID,
		Filename:  report.Filename,
		Rows:      report.Rows,
		URL:       strings.TrimRight(s.cfg.DownloadBaseURL, "/") + "/" + token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// ResolveDownload validates a token and loads the stored report.
func (s *ReportService) ResolveDownload(ctx context.Context, token string) (*ReportDownload, error) {
	if s.storage == nil || s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report storage is not configured")
	}
	file, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	if path.Dir(file.Path) != file.ReportID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "token mismatch")
	}
	payload, err := s.storage.Read(file.Path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "report file not found")
	}
	return &ReportDownload{Filename: path.Base(file.Path), Payload: payload, ExpiresAt: file.ExpiresAt}, nil
}

// Cleanup removes stored reports older than the retention window.
func (s *ReportService) Cleanup() {
	if s.storage == nil {
		return
	}
	deleted, err := s.storage.CleanupOlderThan(s.cfg.Retention)
	if err != nil {
		s.logger.Sugar().Warnw("report cleanup failed", "error", err)
		return
	}
	if len(deleted) > 0 {
		s.logger.Sugar().Infow("report cleanup removed files", "count", len(deleted))
	}
}

// StartCleanup boots a goroutine that purges old reports periodically.
func (s *ReportService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Cleanup()
			}
		}
	}()
}
