package index

import (
	"clubsite/internal/domain/build"
	"encoding/json"
	bolt "go.etcd.io/bbolt"
)

// LoadFingerprint returns the fingerprint of the last successful build,
// or ErrNotFound.
func (s *Store) LoadFingerprint() (build.Fingerprint, error) {
	var fp build.Fingerprint
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bBuild)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get(kFingerprint)
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &fp)
	})
	return fp, err
}

func (s *Store) SaveFingerprint(fp build.Fingerprint) error {
	data, err := json.Marshal(fp)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bBuild)
		if err != nil {
			return err
		}
		return b.Put(kFingerprint, data)
	})
}
