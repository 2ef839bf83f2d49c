// Package handler implements the HTTP handlers of the chatbot API: the data
// endpoint serving the externally produced chatbot_data.json, the chat
// matching endpoint, FAQ administration, and the health report.
package handler
