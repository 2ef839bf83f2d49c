package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/angeloszaimis/chatbot-api/internal/metrics"
	"github.com/angeloszaimis/chatbot-api/internal/requestlog"
	"github.com/angeloszaimis/chatbot-api/internal/rest"
)

const dataRoute = "/chatbot/v1/data"

// dataNotFoundMessage is the user-facing reply when the data file is absent.
const dataNotFoundMessage = "Δεν βρέθηκαν δεδομένα για το chatbot."

// DataFilePath resolves the chatbot data file under the upload base
// directory. The relative segments are fixed; the producer of the file
// writes to the same location.
func DataFilePath(uploadDir string) string {
	return filepath.Join(uploadDir, "chatbot", "chatbot_data.json")
}

// DataHandler serves the externally produced chatbot data file. It has
// read-only access: the file may be absent, malformed, or rewritten by its
// producer at any time.
type DataHandler struct {
	logger     *slog.Logger
	requestLog *requestlog.Logger
	uploadDir  string
	collector  *metrics.Collector
}

func NewDataHandler(logger *slog.Logger, requestLog *requestlog.Logger, uploadDir string, collector *metrics.Collector) *DataHandler {
	return &DataHandler{
		logger:     logger,
		requestLog: requestLog,
		uploadDir:  uploadDir,
		collector:  collector,
	}
}

func (h *DataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	clientIP := extractClientIP(r)

	h.collector.Emit(metrics.Event{
		Type:      metrics.EventRequestReceived,
		Timestamp: start,
		Route:     dataRoute,
	})

	h.logger.Info("Received data request",
		slog.String("from", clientIP),
		slog.String("path", r.URL.Path))
	h.requestLog.Log("chatbot data requested by " + clientIP)

	path := DataFilePath(h.uploadDir)
	h.requestLog.Log("resolved data file path: " + path)

	if _, err := os.Stat(path); err != nil {
		h.requestLog.Log("data file not found: " + path)
		h.respondError(w, start, rest.CodeNotFound, dataNotFoundMessage, http.StatusNotFound)
		return
	}

	raw, err := os.ReadFile(path)

	var payload any
	if err == nil {
		err = json.Unmarshal(raw, &payload)
	}
	if err != nil {
		h.requestLog.Log("failed to decode chatbot data: " + err.Error())
		h.respondError(w, start, rest.CodeJSONError,
			fmt.Sprintf("Μη έγκυρα δεδομένα chatbot: %s", err.Error()),
			http.StatusInternalServerError)
		return
	}

	h.requestLog.Logf("served chatbot data (%d bytes)", len(raw))

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	rest.WriteJSON(w, http.StatusOK, payload)

	h.collector.Emit(metrics.Event{
		Type:       metrics.EventResponseCompleted,
		Timestamp:  time.Now(),
		Route:      dataRoute,
		Duration:   time.Since(start),
		StatusCode: http.StatusOK,
	})
}

func (h *DataHandler) respondError(w http.ResponseWriter, start time.Time, code, message string, status int) {
	rest.WriteError(w, code, message, status)

	h.collector.Emit(metrics.Event{
		Type:       metrics.EventResponseCompleted,
		Timestamp:  time.Now(),
		Route:      dataRoute,
		Duration:   time.Since(start),
		StatusCode: status,
	})
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}
