package index

import (
	"clubsite/internal/domain/content"
	"clubsite/internal/domain/site"
	"encoding/json"
	"errors"
	"fmt"
	bolt "go.etcd.io/bbolt"
	"strings"
)

type RebuildOptions struct {
	IncludeDraft bool
}

// Rebuild replaces every post bucket with the given posts in one
// transaction. The build bucket is left alone. An alias that collides
// with a live slug or with another post's alias is skipped and reported.
func (s *Store) Rebuild(posts []content.Post, opt RebuildOptions) ([]string, error) {
	var skipped []string
	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bMeta, bAlias, bIdxDate, bIdxTag, bIdxCat} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
		}

		metaB, err := tx.CreateBucket(bMeta)
		if err != nil {
			return err
		}
		aliasB, err := tx.CreateBucket(bAlias)
		if err != nil {
			return err
		}
		idxDateB, err := tx.CreateBucket(bIdxDate)
		if err != nil {
			return err
		}
		idxTagB, err := tx.CreateBucket(bIdxTag)
		if err != nil {
			return err
		}
		idxCatB, err := tx.CreateBucket(bIdxCat)
		if err != nil {
			return err
		}

		live := make(map[string]struct{}, len(posts))
		for _, p := range posts {
			live[p.Meta.Slug] = struct{}{}
		}

		for _, p := range posts {
			m := p.Meta
			if m.Hidden {
				continue
			}
			if m.Draft && !opt.IncludeDraft {
				continue
			}
			if strings.TrimSpace(m.Slug) == "" {
				continue
			}
			mb, err := json.Marshal(m)
			if err != nil {
				return err
			}
			if err := metaB.Put([]byte(m.Slug), mb); err != nil {
				return err
			}

			key := makeDateSlugKey(m.Date.UnixNano(), m.Slug)
			if err := idxDateB.Put(key, []byte{1}); err != nil {
				return err
			}

			for _, tag := range m.Tags {
				if strings.TrimSpace(tag) == "" {
					continue
				}
				sb, err := idxTagB.CreateBucketIfNotExists([]byte(site.PathSegment(tag)))
				if err != nil {
					return err
				}
				if err := sb.Put(key, []byte{1}); err != nil {
					return err
				}
			}

			if cat := strings.TrimSpace(m.Category); cat != "" {
				sb, err := idxCatB.CreateBucketIfNotExists([]byte(site.PathSegment(cat)))
				if err != nil {
					return err
				}
				if err := sb.Put(key, []byte{1}); err != nil {
					return err
				}
			}

			for _, old := range m.Aliases {
				old = site.PathSegment(old)
				if _, ok := live[old]; ok {
					skipped = append(skipped, fmt.Sprintf("%s: alias %q shadows a post slug", m.Slug, old))
					continue
				}
				if prev := aliasB.Get([]byte(old)); prev != nil {
					skipped = append(skipped, fmt.Sprintf("%s: alias %q already points to %s", m.Slug, old, prev))
					continue
				}
				if err := aliasB.Put([]byte(old), []byte(m.Slug)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return skipped, nil
}
