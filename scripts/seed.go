// Seed populates a development environment: it creates the FAQ database with
// a starter topic and writes a sample chatbot_data.json under the upload
// directory.
//
// Usage:
//
//	go run seed.go -db ../faqs.db -uploads ../uploads
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/angeloszaimis/chatbot-api/internal/store"
)

func main() {
	dbPath := flag.String("db", "./faqs.db", "path to the FAQ database")
	uploadDir := flag.String("uploads", "./uploads", "upload base directory")
	flag.Parse()

	ctx := context.Background()

	st, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	if err := st.Init(ctx); err != nil {
		log.Fatalf("init store: %v", err)
	}

	topic := store.Topic{
		Name: "decentralized_administration",
		Answer: "Η Αποκεντρωμένη Διοίκηση στην Ελλάδα είναι ένας θεσμός που λειτουργεί ως ενδιάμεσο επίπεδο " +
			"μεταξύ κεντρικής κυβέρνησης και τοπικής αυτοδιοίκησης. Ο ρόλος της περιλαμβάνει τον έλεγχο " +
			"νομιμότητας πράξεων της τοπικής αυτοδιοίκησης, την εποπτεία δημόσιων υπηρεσιών σε περιφερειακό " +
			"επίπεδο και την υλοποίηση πολιτικών του κράτους σε τομείς όπως περιβάλλον, πολεοδομία και υγεία.",
		References: []string{
			"Πες μου για την Αποκεντρωμένη Διοίκηση",
			"Ποιος είναι ο ρόλος των Αποκεντρωμένων Διοικήσεων",
			"Τι ξέρεις για τις Αποκεντρωμένες Διοικήσεις",
		},
	}

	if err := st.UpsertTopic(ctx, topic); err != nil {
		log.Fatalf("seed topic: %v", err)
	}
	log.Printf("seeded topic %q", topic.Name)

	dataDir := filepath.Join(*uploadDir, "chatbot")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("create upload dir: %v", err)
	}

	sample := map[string]any{
		"topics":  []string{topic.Name},
		"version": 1,
	}
	raw, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		log.Fatalf("encode sample data: %v", err)
	}

	dataPath := filepath.Join(dataDir, "chatbot_data.json")
	if err := os.WriteFile(dataPath, raw, 0o644); err != nil {
		log.Fatalf("write sample data: %v", err)
	}
	log.Printf("wrote %s", dataPath)
}
