package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a topic does not exist.
var ErrNotFound = errors.New("topic not found")

// Topic is one FAQ entry: a unique name, the answer served to users, and the
// reference questions it is matched against.
type Topic struct {
	Name       string
	Answer     string
	References []string
}

// Store persists FAQ topics in a SQLite database.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Store{db: db}, nil
}

// Init creates the schema if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS topics (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	topic_name TEXT UNIQUE NOT NULL,
	answer TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS topic_references (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	topic_id INTEGER NOT NULL,
	reference_question TEXT NOT NULL,
	FOREIGN KEY (topic_id) REFERENCES topics (id)
);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// UpsertTopic inserts or updates a topic and replaces its reference
// questions, all within one transaction.
func (s *Store) UpsertTopic(ctx context.Context, topic Topic) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO topics (topic_name, answer) VALUES (?, ?)
		ON CONFLICT (topic_name) DO UPDATE SET answer = excluded.answer`,
		topic.Name, topic.Answer)
	if err != nil {
		return fmt.Errorf("upsert topic: %w", err)
	}

	var topicID int64
	if err = tx.QueryRowContext(ctx,
		`SELECT id FROM topics WHERE topic_name = ?`, topic.Name).Scan(&topicID); err != nil {
		return fmt.Errorf("lookup topic id: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM topic_references WHERE topic_id = ?`, topicID); err != nil {
		return fmt.Errorf("clear references: %w", err)
	}

	for _, ref := range topic.References {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO topic_references (topic_id, reference_question) VALUES (?, ?)`,
			topicID, ref); err != nil {
			return fmt.Errorf("insert reference: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// Topic returns one topic with its references, or ErrNotFound.
func (s *Store) Topic(ctx context.Context, name string) (*Topic, error) {
	var (
		topicID int64
		answer  string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, answer FROM topics WHERE topic_name = ?`, name).Scan(&topicID, &answer)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query topic: %w", err)
	}

	refs, err := s.references(ctx, topicID)
	if err != nil {
		return nil, err
	}

	return &Topic{Name: name, Answer: answer, References: refs}, nil
}

// TopicNames returns all topic names in alphabetical order.
func (s *Store) TopicNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT topic_name FROM topics ORDER BY topic_name`)
	if err != nil {
		return nil, fmt.Errorf("query topic names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan topic name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// LoadAll returns every topic with its references, for index building.
func (s *Store) LoadAll(ctx context.Context) ([]Topic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic_name, answer FROM topics ORDER BY topic_name`)
	if err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	defer rows.Close()

	type row struct {
		id    int64
		topic Topic
	}
	var loaded []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.topic.Name, &r.topic.Answer); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		loaded = append(loaded, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	topics := make([]Topic, 0, len(loaded))
	for _, r := range loaded {
		refs, err := s.references(ctx, r.id)
		if err != nil {
			return nil, err
		}
		r.topic.References = refs
		topics = append(topics, r.topic)
	}

	return topics, nil
}

func (s *Store) references(ctx context.Context, topicID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT reference_question FROM topic_references WHERE topic_id = ? ORDER BY id`, topicID)
	if err != nil {
		return nil, fmt.Errorf("query references: %w", err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
