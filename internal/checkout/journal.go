package checkout

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var journalBucket = []byte("submissions")

// Journal keeps a local record of every submission outcome so the desk
// operator can reconcile orders that never reached the endpoint.
type Journal struct {
	db *bolt.DB
}

type JournalEntry struct {
	At         time.Time `json:"at"`
	Customer   string    `json:"customer"`
	Email      string    `json:"email"`
	Method     string    `json:"method"`
	Items      int       `json:"items"`
	State      string    `json:"state"`
	Transport  string    `json:"transport,omitempty"`
	ExportPath string    `json:"export_path,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// OpenJournal opens (or creates) the journal file.
func OpenJournal(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open journal")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(journalBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init journal")
	}
	return &Journal{db: db}, nil
}

// Record appends one outcome, keyed by nanosecond timestamp.
func (j *Journal) Record(sub Submission, out Outcome, sendErr error) error {
	entry := JournalEntry{
		At:         time.Now(),
		Customer:   sub.CustomerName,
		Email:      sub.CustomerEmail,
		Method:     sub.DeliveryMethod,
		Items:      len(sub.Items),
		State:      out.State.String(),
		Transport:  out.Transport,
		ExportPath: out.ExportPath,
	}
	if sendErr != nil {
		entry.Error = sendErr.Error()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "serialize journal entry")
	}
	key := []byte(fmt.Sprintf("%020d", entry.At.UnixNano()))
	return j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(journalBucket).Put(key, data)
	})
}

// Entries returns all recorded outcomes in chronological order.
func (j *Journal) Entries() ([]JournalEntry, error) {
	var out []JournalEntry
	err := j.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(journalBucket).ForEach(func(_, v []byte) error {
			var e JournalEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			out = append(out, e)
			return nil
		})
	})
	return out, err
}

func (j *Journal) Close() error { return j.db.Close() }
