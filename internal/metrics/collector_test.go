package metrics_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/chatbot-api/internal/metrics"
)

var _ = Describe("Collector", func() {
	var (
		collector *metrics.Collector
		ctx       context.Context
		cancel    context.CancelFunc
	)

	BeforeEach(func() {
		log := slog.New(slog.NewTextHandler(os.Stdout, nil))
		collector = metrics.NewCollector(64, log)

		ctx, cancel = context.WithCancel(context.Background())
		collector.Start(ctx)
	})

	AfterEach(func() {
		cancel()
	})

	It("aggregates emitted events", func() {
		collector.Emit(metrics.Event{
			Type:      metrics.EventRequestReceived,
			Timestamp: time.Now(),
			Route:     "/chatbot/v1/data",
		})
		collector.Emit(metrics.Event{
			Type:       metrics.EventResponseCompleted,
			Timestamp:  time.Now(),
			Route:      "/chatbot/v1/data",
			Duration:   2 * time.Millisecond,
			StatusCode: 200,
		})

		Eventually(func() int64 {
			return collector.Snapshot().TotalRequests
		}).Should(Equal(int64(1)))

		Eventually(func() int64 {
			return collector.Snapshot().Routes["/chatbot/v1/data"].StatusCodes[200]
		}).Should(Equal(int64(1)))
	})

	It("aggregates resource status events", func() {
		collector.Emit(metrics.Event{
			Type:      metrics.EventResourceStatus,
			Timestamp: time.Now(),
			Resource:  "data_file",
			Healthy:   true,
		})

		Eventually(func() map[string]bool {
			return collector.Snapshot().Resources
		}).Should(HaveKeyWithValue("data_file", true))
	})

	It("does not block when the buffer is full", func() {
		small := metrics.NewCollector(1, slog.New(slog.NewTextHandler(os.Stdout, nil)))
		// Never started; the channel fills after one event.
		for i := 0; i < 100; i++ {
			small.Emit(metrics.Event{Type: metrics.EventRequestReceived, Route: "/x"})
		}
	})

	It("is safe to emit on a nil collector", func() {
		var nilCollector *metrics.Collector
		Expect(func() {
			nilCollector.Emit(metrics.Event{Type: metrics.EventRequestReceived})
		}).NotTo(Panic())
	})

	Describe("Handler", func() {
		It("serves the snapshot as JSON", func() {
			collector.Emit(metrics.Event{
				Type:      metrics.EventRequestReceived,
				Timestamp: time.Now(),
				Route:     "/chatbot/v1/data",
			})

			Eventually(func() int64 {
				return collector.Snapshot().TotalRequests
			}).Should(Equal(int64(1)))

			w := httptest.NewRecorder()
			collector.Handler()(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))

			var snap map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &snap)).To(Succeed())
			Expect(snap).To(HaveKey("routes"))
		})
	})
})
