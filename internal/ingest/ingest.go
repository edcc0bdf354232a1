// Package ingest drives a dimensioning file end to end: workbook load,
// extraction (with the inference fallback), break scheduling,
// distribution validation and wholesale persistence, plus the report
// cache and supervisor notifications.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/config"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/dimensioning"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/domain"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/inference"
	"github.com/gabibenitezzzz0011/PROYECTO-REFRIS-sub000/internal/scheduler"
)

// NotificationQueue is the queue the notifier worker consumes.
const NotificationQueue = "notification_queue"

// SnapshotStore is the persistence surface the service needs.
// *repository.Repository satisfies it.
type SnapshotStore interface {
	ReplaceSnapshot(snapshot *domain.WorkforceSnapshot) error
}

// Extractor is the inference fallback surface. *inference.Pipeline
// satisfies it.
type Extractor interface {
	ExtractViaInference(ctx context.Context, desc inference.FileDescription) (*domain.StructuredExtraction, error)
}

// DateReport is what gets cached per ingested date and served by the
// report endpoint.
type DateReport struct {
	Date       string                   `json:"date"`
	Filename   string                   `json:"filename"`
	Extraction *domain.ExtractionReport `json:"extraction"`
	Verdict    domain.ValidationVerdict `json:"verdict"`
	Degraded   bool                     `json:"degraded"`
	IngestedAt time.Time                `json:"ingestedAt"`
}

// Result summarizes one ingestion run for the upload response.
type Result struct {
	Period   domain.Period            `json:"period"`
	Report   *domain.ExtractionReport `json:"report"`
	Reports  []DateReport             `json:"dateReports"`
	Degraded bool                     `json:"degraded"`
}

type Service struct {
	config    *config.Config
	store     SnapshotStore
	extractor Extractor

	// notifyChannel and redisClient may be nil in offline tools (seed,
	// tests); the corresponding side effects are skipped.
	notifyChannel *amqp.Channel
	redisClient   *redis.Client
}

func NewService(cfg *config.Config, store SnapshotStore, extractor Extractor, notifyCh *amqp.Channel, rdb *redis.Client) *Service {
	return &Service{
		config:        cfg,
		store:         store,
		extractor:     extractor,
		notifyChannel: notifyCh,
		redisClient:   rdb,
	}
}

// IngestFile runs the whole chain for one uploaded file. The snapshot
// for each covered date replaces whatever was stored before. If ctx is
// cancelled before persistence starts, the computed results are
// discarded and nothing is written.
func (s *Service) IngestFile(ctx context.Context, filename string, content io.Reader) (*Result, error) {
	wb, err := dimensioning.LoadWorkbook(content, filename)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el archivo %s: %w", filename, err)
	}

	period, ok := dimensioning.PeriodFromFilename(filename)
	if !ok {
		period = dimensioning.CurrentPeriod(time.Now())
	}

	degraded := false
	records, report, err := dimensioning.Extract(wb, period)
	if errors.Is(err, domain.ErrEmptyExtraction) {
		slog.Warn("extracción directa vacía, pasando a inferencia", "file", filename)

		ex, infErr := s.extractor.ExtractViaInference(ctx, inference.DescribeWorkbook(wb))
		if infErr != nil {
			return nil, infErr
		}
		degraded = ex.Degraded

		records, report, err = dimensioning.Extract(dimensioning.WorkbookFromExtraction(ex, filename), period)
	}
	if err != nil {
		return nil, err
	}

	snapshots := buildSnapshots(records, degraded)

	result := &Result{Period: period, Report: report, Degraded: degraded}
	for _, snapshot := range snapshots {
		verdict := scheduler.ValidateDistribution(snapshot)
		if !verdict.Valid {
			// Advisory only: the snapshot is persisted anyway and the
			// violation is reported for manual rebalancing.
			slog.Warn("distribución de breaks excede el tope",
				"date", snapshot.Date,
				"minute", *verdict.ViolatingMinute,
				"occupancy", verdict.Occupancy,
				"cap", verdict.Cap,
			)
		}

		result.Reports = append(result.Reports, DateReport{
			Date:       snapshot.Date,
			Filename:   filename,
			Extraction: report,
			Verdict:    verdict,
			Degraded:   degraded,
			IngestedAt: time.Now(),
		})
	}

	// Cancellation before persistence discards the run entirely; no
	// date may end up half written.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, snapshot := range snapshots {
		if err := s.store.ReplaceSnapshot(snapshot); err != nil {
			return nil, fmt.Errorf("no se pudo persistir la fecha %s: %w", snapshot.Date, err)
		}
		s.cacheReport(&result.Reports[i])
	}

	s.notifyOutcomes(result, filename)

	return result, nil
}

// buildSnapshots groups records by date, schedules their breaks and
// sizes the workforce per date.
func buildSnapshots(records []domain.ShiftRecord, degraded bool) []*domain.WorkforceSnapshot {
	byDate := make(map[string]*domain.WorkforceSnapshot)
	var order []string

	for _, rec := range records {
		snapshot, ok := byDate[rec.Date]
		if !ok {
			snapshot = &domain.WorkforceSnapshot{Date: rec.Date, Degraded: degraded}
			byDate[rec.Date] = snapshot
			order = append(order, rec.Date)
		}
		snapshot.Records = append(snapshot.Records, rec)
		snapshot.Breaks = append(snapshot.Breaks, scheduler.ScheduleBreaks(rec)...)
	}

	snapshots := make([]*domain.WorkforceSnapshot, 0, len(order))
	for _, date := range order {
		snapshot := byDate[date]
		snapshot.WorkforceSize = len(snapshot.Records)
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

func (s *Service) cacheReport(report *DateReport) {
	if s.redisClient == nil {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		slog.Error("no se pudo serializar el reporte", "date", report.Date, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.Database.QueryTimeout)*time.Second)
	defer cancel()

	key := fmt.Sprintf("report_%s", report.Date)
	expiration := time.Duration(s.config.Redis.ReportExpiration) * time.Second
	if err := s.redisClient.Set(ctx, key, payload, expiration).Err(); err != nil {
		// The cache is a convenience; losing it never fails the run.
		slog.Error("no se pudo cachear el reporte", "date", report.Date, "error", err)
	}
}

// CachedReport returns the cached report for a date, or nil when the
// cache has no entry (expired or never ingested).
func (s *Service) CachedReport(ctx context.Context, date string) (*DateReport, error) {
	if s.redisClient == nil {
		return nil, nil
	}

	payload, err := s.redisClient.Get(ctx, fmt.Sprintf("report_%s", date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	report := &DateReport{}
	if err := json.Unmarshal(payload, report); err != nil {
		return nil, err
	}
	return report, nil
}

// notifyOutcomes queues a supervisor notification for each degraded
// ingestion and each cap violation. Publishing failures are logged, not
// propagated; the data is already persisted at this point.
func (s *Service) notifyOutcomes(result *Result, filename string) {
	if s.notifyChannel == nil {
		return
	}

	var messages []domain.NotificationMessage
	if result.Degraded {
		messages = append(messages, domain.NotificationMessage{
			Type:     domain.NotificationDegradedExtraction,
			Filename: filename,
			Detail:   "la extracción se resolvió localmente sin inferencia; revisar el archivo",
		})
	}
	for _, report := range result.Reports {
		if !report.Verdict.Valid {
			messages = append(messages, domain.NotificationMessage{
				Type:     domain.NotificationDistributionViolation,
				Date:     report.Date,
				Filename: filename,
				Detail: fmt.Sprintf("minuto %s con %d agentes en break (tope %d)",
					*report.Verdict.ViolatingMinute, report.Verdict.Occupancy, report.Verdict.Cap),
			})
		}
	}

	for _, msg := range messages {
		body, err := json.Marshal(msg)
		if err != nil {
			slog.Error("no se pudo serializar la notificación", "type", msg.Type, "error", err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.RabbitMQ.PublishTimeout)*time.Second)
		err = s.notifyChannel.PublishWithContext(
			ctx,
			"",
			NotificationQueue,
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        body,
			},
		)
		cancel()

		if err != nil {
			slog.Error("no se pudo encolar la notificación", "type", msg.Type, "error", err)
		}
	}
}
