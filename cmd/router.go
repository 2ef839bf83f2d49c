package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/angeloszaimis/chatbot-api/internal/handler"
	"github.com/angeloszaimis/chatbot-api/internal/metrics"
	"github.com/angeloszaimis/chatbot-api/internal/route"
)

func setupRouter(
	dataHandler *handler.DataHandler,
	chatHandler *handler.ChatHandler,
	faqHandler *handler.FAQHandler,
	healthHandler *handler.HealthHandler,
	collector *metrics.Collector,
) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	r.Route("/chatbot/v1", func(api chi.Router) {
		route.Register(api, []route.Route{
			{Method: http.MethodGet, Pattern: "/data", Permission: route.AllowAll, Handler: dataHandler.ServeHTTP},
			{Method: http.MethodPost, Pattern: "/chat", Permission: route.AllowAll, Handler: chatHandler.ServeHTTP},
			{Method: http.MethodGet, Pattern: "/faqs", Permission: route.AllowAll, Handler: faqHandler.List},
			{Method: http.MethodPost, Pattern: "/faqs", Permission: route.AllowAll, Handler: faqHandler.Upsert},
			{Method: http.MethodGet, Pattern: "/faqs/{topic}", Permission: route.AllowAll, Handler: faqHandler.Get},
			{Method: http.MethodPut, Pattern: "/faqs/{topic}", Permission: route.AllowAll, Handler: faqHandler.Update},
		})
	})

	r.Get("/health", healthHandler.ServeHTTP)
	r.Get("/metrics", collector.Handler())

	return r
}
