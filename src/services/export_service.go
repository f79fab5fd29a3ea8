package services

import (
	"context"
	"errors"
	"time"

	"github.com/username/docbridge/backend/src/clients"
	"github.com/username/docbridge/backend/src/database"
	"github.com/username/docbridge/backend/src/logger"
	"github.com/username/docbridge/backend/src/mapper"
	"github.com/username/docbridge/backend/src/observability/metrics"
)

type exportServiceImpl struct {
	fetcher   DocumentFetcher
	deliverer DocumentDeliverer
}

func NewExportService(fetcher DocumentFetcher, deliverer DocumentDeliverer) ExportService {
	return &exportServiceImpl{
		fetcher:   fetcher,
		deliverer: deliverer,
	}
}

// Export fetches the annotation's XML export, remaps it into the target
// schema and delivers it to the sink. The three steps run sequentially; the
// first failure aborts the request, nothing is retried and nothing is
// partially delivered.
func (s *exportServiceImpl) Export(ctx context.Context, queueID, annotationID int) error {
	start := time.Now()
	logger.L.Info("Export START", "queueID", queueID, "annotationID", annotationID)

	sourceXML, err := s.fetcher.FetchAnnotationXML(ctx, queueID, annotationID)
	if err != nil {
		return s.finish(queueID, annotationID, start, err)
	}

	converted, err := mapper.Convert(sourceXML)
	if err != nil {
		return s.finish(queueID, annotationID, start, err)
	}

	if err := s.deliverer.Deliver(ctx, annotationID, converted); err != nil {
		return s.finish(queueID, annotationID, start, err)
	}

	logger.L.Info("Export END", "queueID", queueID, "annotationID", annotationID, "duration", time.Since(start))
	return s.finish(queueID, annotationID, start, nil)
}

func (s *exportServiceImpl) finish(queueID, annotationID int, start time.Time, err error) error {
	outcome := ErrorKind(err)
	metrics.ObserveExport(outcome, time.Since(start))
	if err != nil {
		logger.L.Info("Export failed", "queueID", queueID, "annotationID", annotationID, "kind", outcome, "error", err)
		database.RecordExport(queueID, annotationID, false, outcome)
		return err
	}
	database.RecordExport(queueID, annotationID, true, "")
	return nil
}

// ErrorKind classifies an export error into its taxonomy bucket, used for
// metrics labels and the history table.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, clients.ErrUpstreamFetch):
		return "upstream_fetch"
	case errors.Is(err, mapper.ErrParse):
		return "parse"
	case errors.Is(err, mapper.ErrValidation):
		return "validation"
	case errors.Is(err, clients.ErrSinkDelivery):
		return "sink_delivery"
	default:
		return "internal"
	}
}
