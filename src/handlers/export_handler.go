package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/username/docbridge/backend/src/database"
	"github.com/username/docbridge/backend/src/logger"
	"github.com/username/docbridge/backend/src/services"
	"github.com/username/docbridge/backend/src/utils"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(service services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: service,
	}
}

// HandleExport runs one export. Every failure past authentication folds into
// {"success": false} with status 422; callers only learn the outcome, not
// the failing step.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	queueID, err := strconv.Atoi(r.URL.Query().Get("queue_id"))
	if err != nil {
		logger.L.Warn("Invalid or missing queue_id query parameter", "requestID", requestID, "queue_id", r.URL.Query().Get("queue_id"))
		writeSuccess(w, false)
		return
	}
	annotationID, err := strconv.Atoi(r.URL.Query().Get("annotation_id"))
	if err != nil {
		logger.L.Warn("Invalid or missing annotation_id query parameter", "requestID", requestID, "annotation_id", r.URL.Query().Get("annotation_id"))
		writeSuccess(w, false)
		return
	}

	if err := h.exportService.Export(r.Context(), queueID, annotationID); err != nil {
		logger.L.Info("Export request failed", "requestID", requestID, "queueID", queueID, "annotationID", annotationID, "error", err)
		writeSuccess(w, false)
		return
	}

	logger.L.Info("Export request succeeded", "requestID", requestID, "queueID", queueID, "annotationID", annotationID)
	writeSuccess(w, true)
}

// HandleListExports returns the recent export attempts from the audit trail.
func (h *ExportHandler) HandleListExports(w http.ResponseWriter, r *http.Request) {
	records, err := database.ListExports(100)
	if err != nil {
		logger.L.Error("Error listing export history", "error", err)
		utils.SendJSONError(w, "error retrieving export history", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, records, http.StatusOK)
}

func writeSuccess(w http.ResponseWriter, success bool) {
	status := http.StatusOK
	if !success {
		status = http.StatusUnprocessableEntity
	}
	utils.SendJSON(w, map[string]bool{"success": success}, status)
}
