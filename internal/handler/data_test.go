package handler_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/chatbot-api/internal/handler"
	"github.com/angeloszaimis/chatbot-api/internal/requestlog"
	"github.com/angeloszaimis/chatbot-api/internal/rest"
)

var _ = Describe("DataHandler", func() {
	var (
		h         *handler.DataHandler
		uploadDir string
		logPath   string
		dataPath  string
		log       *slog.Logger
	)

	writeDataFile := func(content string) {
		Expect(os.MkdirAll(filepath.Dir(dataPath), 0o755)).To(Succeed())
		Expect(os.WriteFile(dataPath, []byte(content), 0o644)).To(Succeed())
	}

	serve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/chatbot/v1/data", nil)
		req.RemoteAddr = "192.0.2.10:51234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		tempDir, err := os.MkdirTemp("", "data-handler-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, tempDir)

		uploadDir = filepath.Join(tempDir, "uploads")
		logPath = filepath.Join(tempDir, "chatbot.log")
		dataPath = handler.DataFilePath(uploadDir)

		log = slog.New(slog.NewTextHandler(os.Stdout, nil))
		h = handler.NewDataHandler(log, requestlog.New(true, logPath), uploadDir, nil)
	})

	Context("with a well-formed data file", func() {
		BeforeEach(func() {
			writeDataFile(`{"a": 1, "b": [2,3]}`)
		})

		It("returns 200 with the parsed payload", func() {
			w := serve()

			Expect(w.Code).To(Equal(http.StatusOK))

			var payload map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &payload)).To(Succeed())
			Expect(payload).To(Equal(map[string]any{
				"a": float64(1),
				"b": []any{float64(2), float64(3)},
			}))
		})

		It("sets the three CORS headers", func() {
			w := serve()

			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
			Expect(w.Header().Get("Access-Control-Allow-Methods")).To(Equal("GET, OPTIONS"))
			Expect(w.Header().Get("Access-Control-Allow-Headers")).To(Equal("Content-Type"))
		})

		It("is idempotent across repeated requests", func() {
			first := serve()
			second := serve()

			Expect(second.Code).To(Equal(first.Code))
			Expect(second.Body.String()).To(Equal(first.Body.String()))
		})

		It("logs the request, the path, and the outcome", func() {
			serve()

			content, err := os.ReadFile(logPath)
			Expect(err).NotTo(HaveOccurred())

			lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
			Expect(lines).To(HaveLen(3))
			for _, line := range lines {
				Expect(line).To(MatchRegexp(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] `))
			}
			Expect(lines[0]).To(ContainSubstring("192.0.2.10"))
			Expect(lines[1]).To(ContainSubstring(dataPath))
			Expect(lines[2]).To(ContainSubstring("bytes"))
		})

		It("prefers X-Forwarded-For for the caller address", func() {
			req := httptest.NewRequest(http.MethodGet, "/chatbot/v1/data", nil)
			req.RemoteAddr = "192.0.2.10:51234"
			req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
			h.ServeHTTP(httptest.NewRecorder(), req)

			content, err := os.ReadFile(logPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(content)).To(ContainSubstring("203.0.113.7"))
		})
	})

	Context("when the data file is missing", func() {
		It("returns 404 with code not_found", func() {
			w := serve()

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var envelope rest.Error
			Expect(json.Unmarshal(w.Body.Bytes(), &envelope)).To(Succeed())
			Expect(envelope.Code).To(Equal("not_found"))
			Expect(envelope.Data.Status).To(Equal(http.StatusNotFound))
			Expect(envelope.Message).NotTo(BeEmpty())
		})

		It("does not expose the computed path in the response", func() {
			w := serve()
			Expect(w.Body.String()).NotTo(ContainSubstring(uploadDir))
		})
	})

	Context("when the data file holds invalid JSON", func() {
		BeforeEach(func() {
			writeDataFile(`{"a": 1,`)
		})

		It("returns 500 with code json_error embedding the decoder text", func() {
			w := serve()

			Expect(w.Code).To(Equal(http.StatusInternalServerError))

			var envelope rest.Error
			Expect(json.Unmarshal(w.Body.Bytes(), &envelope)).To(Succeed())
			Expect(envelope.Code).To(Equal("json_error"))
			Expect(envelope.Data.Status).To(Equal(http.StatusInternalServerError))
			Expect(envelope.Message).To(ContainSubstring("unexpected end of JSON input"))
		})
	})

	Context("when the data file is empty", func() {
		BeforeEach(func() {
			writeDataFile("")
		})

		It("returns 500 with code json_error", func() {
			w := serve()

			Expect(w.Code).To(Equal(http.StatusInternalServerError))

			var envelope rest.Error
			Expect(json.Unmarshal(w.Body.Bytes(), &envelope)).To(Succeed())
			Expect(envelope.Code).To(Equal("json_error"))
		})
	})

	Context("with the request log disabled", func() {
		BeforeEach(func() {
			h = handler.NewDataHandler(log, requestlog.New(false, logPath), uploadDir, nil)
			writeDataFile(`[1, 2, 3]`)
		})

		It("writes no log lines", func() {
			w := serve()
			Expect(w.Code).To(Equal(http.StatusOK))

			_, err := os.Stat(logPath)
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})
})
