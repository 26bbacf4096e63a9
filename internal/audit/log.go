// Package audit provides a persistent trail of console actions: validation
// runs, vendor payload encodings, envelope builds, and logins. Stored in a
// dedicated BoltDB bucket so operators can answer "who prepared this change
// and when". The DHCP server itself remains the system of record for
// configuration.
package audit

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketAudit     = []byte("audit_log")
	bucketAuditUser = []byte("audit_user_index") // username → list of record keys
)

// Actions recorded in the audit trail.
const (
	ActionValidate = "validate"
	ActionEncode   = "encode"
	ActionEnvelope = "envelope"
	ActionLogin    = "login"
)

// Record is a single audit log entry.
type Record struct {
	ID        uint64 `json:"id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Entity    string `json:"entity,omitempty"`
	User      string `json:"user,omitempty"`
	Outcome   string `json:"outcome"`
	Errors    int    `json:"errors,omitempty"`
	Warnings  int    `json:"warnings,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// QueryParams holds filter parameters for querying the audit log.
type QueryParams struct {
	User   string    // filter by username
	Action string    // filter by action type
	Entity string    // filter by entity kind
	From   time.Time // range start (inclusive)
	To     time.Time // range end (inclusive)
	Limit  int       // max results (0 = default 1000)
}

// Log provides append-only audit logging for console actions.
type Log struct {
	db     *bolt.DB
	logger *slog.Logger
}

// NewLog creates a new audit log backed by BoltDB.
func NewLog(db *bolt.DB, logger *slog.Logger) (*Log, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketAudit); err != nil {
			return fmt.Errorf("creating audit bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists(bucketAuditUser); err != nil {
			return fmt.Errorf("creating audit user index: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Log{db: db, logger: logger}, nil
}

// Append persists a single audit record with an auto-increment ID. The
// timestamp is stamped here; callers fill in everything else.
func (l *Log) Append(rec Record) error {
	rec.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)

	err := l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAudit)

		id, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("generating audit ID: %w", err)
		}
		rec.ID = id

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshalling audit record: %w", err)
		}

		if err := b.Put(uint64Key(id), data); err != nil {
			return fmt.Errorf("storing audit record: %w", err)
		}

		if rec.User != "" {
			idx := tx.Bucket(bucketAuditUser)
			userKey := []byte(rec.User)
			var ids []uint64
			if existing := idx.Get(userKey); existing != nil {
				json.Unmarshal(existing, &ids)
			}
			ids = append(ids, id)
			idData, _ := json.Marshal(ids)
			idx.Put(userKey, idData)
		}

		return nil
	})
	if err != nil {
		l.logger.Error("failed to write audit record",
			"action", rec.Action, "entity", rec.Entity, "error", err)
	}
	return err
}

// Query searches the audit log, newest first.
func (l *Log) Query(params QueryParams) ([]Record, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 1000
	}

	if params.User != "" {
		return l.queryByUser(params, limit)
	}

	results := []Record{}
	err := l.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketAudit).Cursor()
		for k, v := c.Last(); k != nil && len(results) < limit; k, v = c.Prev() {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				continue
			}
			if matchesQuery(rec, params) {
				results = append(results, rec)
			}
		}
		return nil
	})
	return results, err
}

// queryByUser uses the user index for efficient lookups.
func (l *Log) queryByUser(params QueryParams, limit int) ([]Record, error) {
	results := []Record{}
	err := l.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bucketAuditUser)
		b := tx.Bucket(bucketAudit)

		idsData := idx.Get([]byte(params.User))
		if idsData == nil {
			return nil
		}
		var ids []uint64
		if err := json.Unmarshal(idsData, &ids); err != nil {
			return nil
		}

		for i := len(ids) - 1; i >= 0 && len(results) < limit; i-- {
			data := b.Get(uint64Key(ids[i]))
			if data == nil {
				continue
			}
			var rec Record
			if err := json.Unmarshal(data, &rec); err != nil {
				continue
			}
			if matchesQuery(rec, params) {
				results = append(results, rec)
			}
		}
		return nil
	})
	return results, err
}

// Count returns the total number of audit records.
func (l *Log) Count() int {
	var count int
	l.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(bucketAudit).Stats().KeyN
		return nil
	})
	return count
}

// matchesQuery returns true if a record matches all non-zero query fields.
func matchesQuery(rec Record, params QueryParams) bool {
	if params.Action != "" && rec.Action != params.Action {
		return false
	}
	if params.Entity != "" && rec.Entity != params.Entity {
		return false
	}
	if !params.From.IsZero() || !params.To.IsZero() {
		ts, err := time.Parse(time.RFC3339Nano, rec.Timestamp)
		if err != nil {
			return false
		}
		if !params.From.IsZero() && ts.Before(params.From) {
			return false
		}
		if !params.To.IsZero() && ts.After(params.To) {
			return false
		}
	}
	return true
}

func uint64Key(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}
