package index

import (
	"clubsite/internal/domain/content"
	"clubsite/internal/domain/site"
	"encoding/json"
	"errors"
	bolt "go.etcd.io/bbolt"
	"strings"
)

var ErrNotFound = errors.New("not found")

type ListOptions struct {
	Page int
	// Size <= 0 returns every matching post.
	Size         int
	IncludeDraft bool
}

func (s *Store) GetMeta(slug string) (content.PostMeta, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return content.PostMeta{}, ErrNotFound
	}
	var m content.PostMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(slug))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &m)
	})
	return m, err
}

// ResolveAlias returns slugOrOld when it names a post, otherwise the post
// an alias points to.
func (s *Store) ResolveAlias(slugOrOld string) (string, error) {
	slugOrOld = strings.TrimSpace(slugOrOld)
	if slugOrOld == "" {
		return "", ErrNotFound
	}

	if _, err := s.GetMeta(slugOrOld); err == nil {
		return slugOrOld, nil
	}

	var mapped string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bAlias)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(site.PathSegment(slugOrOld)))
		if v == nil {
			return ErrNotFound
		}
		mapped = string(v)
		return nil
	})
	return mapped, err
}

// Aliases returns every alias -> slug pair.
func (s *Store) Aliases() (map[string]string, error) {
	out := make(map[string]string)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bAlias)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			out[string(k)] = string(v)
			return nil
		})
	})
	return out, err
}

func normalizePaging(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size < 0 {
		size = 0
	}
	return page, size
}

// List returns posts newest first.
func (s *Store) List(opt ListOptions) ([]content.PostMeta, error) {
	var out []content.PostMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		out, err = collect(tx, tx.Bucket(bIdxDate), opt)
		return err
	})
	return out, err
}

// ListByTag accepts a tag as written or its path segment.
func (s *Store) ListByTag(tag string, opt ListOptions) ([]content.PostMeta, error) {
	return s.listIn(bIdxTag, tag, opt)
}

func (s *Store) ListByCategory(cat string, opt ListOptions) ([]content.PostMeta, error) {
	return s.listIn(bIdxCat, cat, opt)
}

func (s *Store) listIn(parentName []byte, term string, opt ListOptions) ([]content.PostMeta, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}
	key := []byte(site.PathSegment(term))

	var out []content.PostMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(parentName)
		if parent == nil {
			return nil
		}
		sb := parent.Bucket(key)
		if sb == nil {
			return nil
		}
		var err error
		out, err = collect(tx, sb, opt)
		return err
	})
	return out, err
}

// collect walks a bucket of date keys and loads the metas it points to.
func collect(tx *bolt.Tx, idx *bolt.Bucket, opt ListOptions) ([]content.PostMeta, error) {
	metaB := tx.Bucket(bMeta)
	if idx == nil || metaB == nil {
		return nil, nil
	}
	opt.Page, opt.Size = normalizePaging(opt.Page, opt.Size)
	skip := (opt.Page - 1) * opt.Size

	var out []content.PostMeta
	cur := idx.Cursor()
	for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
		slug := slugFromDateSlugKey(k)
		if slug == "" {
			continue
		}
		v := metaB.Get([]byte(slug))
		if v == nil {
			continue
		}
		var m content.PostMeta
		if err := json.Unmarshal(v, &m); err != nil {
			return nil, err
		}
		if m.Hidden {
			continue
		}
		if m.Draft && !opt.IncludeDraft {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, m)
		if opt.Size > 0 && len(out) >= opt.Size {
			break
		}
	}
	return out, nil
}
