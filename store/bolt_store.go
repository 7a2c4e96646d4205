package store

import (
	"fmt"
	"os"
	"time"

	"github.com/creativeprojects/mailfolder/mailbox"
	bolt "go.etcd.io/bbolt"
)

const (
	metadataBucket  = "metadata"
	historyBucket   = "history"
	versionKey      = "version"
	boltFileVersion = 1
)

// Snapshot records the counts of one folder at one point in time.
type Snapshot struct {
	Time     time.Time
	Messages uint32
	Unseen   uint32
}

// BoltStore keeps a history of folder count snapshots in a bolt file, one
// list of snapshots per folder name.
type BoltStore struct {
	dbFile string
	db     *bolt.DB
}

func NewBoltStore(filename string) (*BoltStore, error) {
	options := bolt.DefaultOptions
	options.Timeout = 10 * time.Second

	db, err := bolt.Open(filename, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q: %w", filename, err)
	}

	store := &BoltStore{
		dbFile: filename,
		db:     db,
	}
	if err = store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Exists() bool {
	_, err := os.Stat(s.dbFile)
	return err == nil
}

func (s *BoltStore) init() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(metadataBucket))
		if err != nil {
			return err
		}
		if data := bucket.Get([]byte(versionKey)); data != nil {
			version, err := DeserializeInt(data)
			if err != nil {
				return fmt.Errorf("cannot read version of %q: %w", s.dbFile, err)
			}
			if version != boltFileVersion {
				return fmt.Errorf("unexpected version %d of %q", version, s.dbFile)
			}
		} else {
			version, err := SerializeInt(boltFileVersion)
			if err != nil {
				return err
			}
			if err = bucket.Put([]byte(versionKey), version); err != nil {
				return err
			}
		}
		_, err = tx.CreateBucketIfNotExists([]byte(historyBucket))
		return err
	})
}

// AddSnapshot appends the counts from status to the history of the folder.
func (s *BoltStore) AddSnapshot(folderName string, status mailbox.Status) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(historyBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %q not found", historyBucket)
		}
		snapshots, err := s.history(bucket, folderName)
		if err != nil {
			// a broken history starts over instead of failing every update
			snapshots = make([]Snapshot, 0, 1)
		}
		snapshots = append(snapshots, Snapshot{
			Time:     time.Now(),
			Messages: status.Messages,
			Unseen:   status.Unseen,
		})
		data, err := SerializeObject(&snapshots)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(folderName), data)
	})
}

// History returns every snapshot recorded for the folder, oldest first.
func (s *BoltStore) History(folderName string) ([]Snapshot, error) {
	var snapshots []Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(historyBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %q not found", historyBucket)
		}
		var err error
		snapshots, err = s.history(bucket, folderName)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (s *BoltStore) history(bucket *bolt.Bucket, folderName string) ([]Snapshot, error) {
	data := bucket.Get([]byte(folderName))
	if data == nil {
		return make([]Snapshot, 0), nil
	}
	snapshots, err := DeserializeObject[[]Snapshot](data)
	if err != nil {
		return nil, err
	}
	return *snapshots, nil
}

// Folders returns the name of every folder with at least one snapshot.
func (s *BoltStore) Folders() ([]string, error) {
	folders := make([]string, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(historyBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %q not found", historyBucket)
		}
		return bucket.ForEach(func(key, value []byte) error {
			folders = append(folders, string(key))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return folders, nil
}
