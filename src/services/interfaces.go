package services

import "context"

// DocumentFetcher retrieves the raw source XML for one annotation.
type DocumentFetcher interface {
	FetchAnnotationXML(ctx context.Context, queueID, annotationID int) (string, error)
}

// DocumentDeliverer hands a converted document to the downstream sink.
type DocumentDeliverer interface {
	Deliver(ctx context.Context, annotationID int, content string) error
}

// ExportService drives the fetch -> convert -> deliver pipeline for one
// annotation.
type ExportService interface {
	Export(ctx context.Context, queueID, annotationID int) error
}
