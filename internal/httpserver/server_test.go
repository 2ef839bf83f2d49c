package httpserver_test

import (
	"context"
	"io"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/chatbot-api/internal/httpserver"
)

var _ = Describe("HTTP Server", func() {
	noop := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	Context("server creation", func() {
		It("creates server with valid address", func() {
			srv, err := httpserver.New("localhost:9999", noop, httpserver.DefaultTimeouts())
			Expect(err).NotTo(HaveOccurred())
			Expect(srv).NotTo(BeNil())
		})

		It("creates server with IP address", func() {
			srv, err := httpserver.New("127.0.0.1:9999", noop, httpserver.DefaultTimeouts())
			Expect(err).NotTo(HaveOccurred())
			Expect(srv).NotTo(BeNil())
		})

		It("handles port-only address", func() {
			srv, err := httpserver.New(":9999", noop, httpserver.DefaultTimeouts())
			Expect(err).NotTo(HaveOccurred())
			Expect(srv).NotTo(BeNil())
		})

		It("falls back to default timeouts for zero values", func() {
			srv, err := httpserver.New(":9999", noop, httpserver.Timeouts{})
			Expect(err).NotTo(HaveOccurred())
			Expect(srv).NotTo(BeNil())
		})

		It("accepts custom timeouts", func() {
			srv, err := httpserver.New(":9999", noop, httpserver.Timeouts{
				Read:     2 * time.Second,
				Write:    3 * time.Second,
				Idle:     30 * time.Second,
				Shutdown: time.Second,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(srv).NotTo(BeNil())
		})

		It("rejects invalid address", func() {
			srv, err := httpserver.New("invalid:host:port", noop, httpserver.DefaultTimeouts())
			Expect(err).To(HaveOccurred())
			Expect(srv).To(BeNil())
		})
	})

	Context("server lifecycle", func() {
		var testServer *httpserver.Server
		var testPort = ":19998"

		AfterEach(func() {
			if testServer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
				defer cancel()
				_ = testServer.Shutdown(ctx)
			}
		})

		It("starts and handles requests", func() {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("ok"))
			})

			var err error
			testServer, err = httpserver.New(testPort, handler, httpserver.DefaultTimeouts())
			Expect(err).NotTo(HaveOccurred())

			go func() {
				_ = testServer.Start()
			}()

			Eventually(func() error {
				resp, err := http.Get("http://localhost" + testPort + "/")
				if err != nil {
					return err
				}
				defer resp.Body.Close()
				_, _ = io.ReadAll(resp.Body)
				return nil
			}, 2*time.Second, 50*time.Millisecond).Should(Succeed())
		})

		It("shuts down gracefully", func() {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			var err error
			testServer, err = httpserver.New(":19997", handler, httpserver.DefaultTimeouts())
			Expect(err).NotTo(HaveOccurred())

			done := make(chan error, 1)
			go func() {
				done <- testServer.Start()
			}()

			Eventually(func() error {
				resp, err := http.Get("http://localhost:19997/")
				if err != nil {
					return err
				}
				resp.Body.Close()
				return nil
			}, 2*time.Second, 50*time.Millisecond).Should(Succeed())

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			Expect(testServer.Shutdown(ctx)).To(Succeed())

			Eventually(done, 2*time.Second).Should(Receive(BeNil()))
			testServer = nil
		})
	})
})
