package index

import (
	"clubsite/internal/domain/content"
	"clubsite/internal/domain/site"
	"encoding/json"
	bolt "go.etcd.io/bbolt"
	"sort"
)

// TermStat is one tag or category with the number of listed posts.
// Name keeps the casing of the newest post using it.
type TermStat struct {
	Key   string
	Name  string
	Count int
}

func (s *Store) TagStats(includeDraft bool) ([]TermStat, error) {
	return s.stats(bIdxTag, includeDraft, func(m content.PostMeta) []string { return m.Tags })
}

func (s *Store) CategoryStats(includeDraft bool) ([]TermStat, error) {
	return s.stats(bIdxCat, includeDraft, func(m content.PostMeta) []string {
		if m.Category == "" {
			return nil
		}
		return []string{m.Category}
	})
}

// stats orders by count, then key.
func (s *Store) stats(parentName []byte, includeDraft bool, terms func(content.PostMeta) []string) ([]TermStat, error) {
	var out []TermStat
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(parentName)
		metaB := tx.Bucket(bMeta)
		if parent == nil || metaB == nil {
			return nil
		}
		return parent.ForEachBucket(func(k []byte) error {
			st := TermStat{Key: string(k)}
			c := parent.Bucket(k).Cursor()
			for ik, _ := c.First(); ik != nil; ik, _ = c.Next() {
				v := metaB.Get([]byte(slugFromDateSlugKey(ik)))
				if v == nil {
					continue
				}
				var m content.PostMeta
				if err := json.Unmarshal(v, &m); err != nil {
					return err
				}
				if m.Hidden || (m.Draft && !includeDraft) {
					continue
				}
				st.Count++
				if st.Name != "" {
					continue
				}
				for _, t := range terms(m) {
					if site.PathSegment(t) == st.Key {
						st.Name = t
						break
					}
				}
			}
			if st.Count == 0 {
				return nil
			}
			if st.Name == "" {
				st.Name = st.Key
			}
			out = append(out, st)
			return nil
		})
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out, err
}
