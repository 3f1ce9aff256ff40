// Package journal persists review decisions so an interrupted review
// session can resume where it left off. Decisions are keyed by a
// content fingerprint of the group's members, not by position, so they
// survive re-clustering of the same inputs. The clustering engine
// itself stays stateless; only the human's answers are recorded.
package journal

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/phyllis-tools/cardmerge/internal/contact"
)

// Decision is a recorded review outcome for one group.
type Decision string

const (
	Approved Decision = "approved"
	Rejected Decision = "rejected"
)

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	fingerprint TEXT PRIMARY KEY,
	decision    TEXT NOT NULL,
	confidence  INTEGER NOT NULL,
	session_id  TEXT NOT NULL,
	decided_at  TIMESTAMP NOT NULL
);
`

// Journal is a sqlite-backed decision log. Safe for use from one
// goroutine; review is a single interactive loop.
type Journal struct {
	db        *sql.DB
	sessionID string
}

// Open creates or opens the journal database at path.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	return &Journal{db: db, sessionID: uuid.NewString()}, nil
}

// Close releases the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores (or replaces) the decision for a group fingerprint.
func (j *Journal) Record(fingerprint string, decision Decision, confidence int) error {
	_, err := j.db.Exec(
		`INSERT OR REPLACE INTO decisions (fingerprint, decision, confidence, session_id, decided_at)
		 VALUES (?, ?, ?, ?, ?)`,
		fingerprint, string(decision), confidence, j.sessionID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record decision: %w", err)
	}
	return nil
}

// Lookup returns the stored decision for a fingerprint, or ("", false)
// when the group has not been decided yet.
func (j *Journal) Lookup(fingerprint string) (Decision, bool, error) {
	var d string
	err := j.db.QueryRow(
		`SELECT decision FROM decisions WHERE fingerprint = ?`, fingerprint,
	).Scan(&d)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up decision: %w", err)
	}
	return Decision(d), true, nil
}

// Counts returns how many groups were approved and rejected so far.
func (j *Journal) Counts() (approved, rejected int, err error) {
	rows, err := j.db.Query(`SELECT decision, COUNT(*) FROM decisions GROUP BY decision`)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count decisions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d string
		var n int
		if err := rows.Scan(&d, &n); err != nil {
			return 0, 0, fmt.Errorf("failed to scan decision count: %w", err)
		}
		switch Decision(d) {
		case Approved:
			approved = n
		case Rejected:
			rejected = n
		}
	}
	return approved, rejected, rows.Err()
}

// Fingerprint derives a stable content key for a group: the sha256 of
// the members' canonical names and normalized emails/phones, sorted,
// so member order and re-clustering do not change it.
func Fingerprint(records []*contact.Contact) string {
	var parts []string
	for _, rec := range records {
		key := rec.CanonicalName()
		for _, e := range rec.NormalizedEmails() {
			key += "|" + e
		}
		for _, p := range rec.NormalizedPhones() {
			key += "|" + p
		}
		parts = append(parts, key)
	}
	sort.Strings(parts)

	sum := sha256.Sum256([]byte(strings.Join(parts, "\n")))
	return hex.EncodeToString(sum[:])
}
