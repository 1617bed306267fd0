package ingest

import (
	"clubsite/internal/domain/content"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"time"
)

// LoadCatalog reads the data tables from dataDir:
//
//	events.yaml      - events: [...]
//	faculty.yaml     - faculty: [...]
//	projects.yaml    - projects: [...]
//	resources.yaml   - resources: [...]
//	members.yaml     - members: [...]
//	initiatives.yaml - initiatives: [...]
//
// A missing file leaves its table empty. Event dates are resolved in loc.
func LoadCatalog(dataDir string, loc *time.Location) (content.Catalog, []Warning, error) {
	var cat content.Catalog
	var warns []Warning

	tables := []struct {
		file string
		take func(part content.Catalog)
	}{
		{"events.yaml", func(part content.Catalog) { cat.Events = part.Events }},
		{"faculty.yaml", func(part content.Catalog) { cat.Faculty = part.Faculty }},
		{"projects.yaml", func(part content.Catalog) { cat.Projects = part.Projects }},
		{"resources.yaml", func(part content.Catalog) { cat.Resources = part.Resources }},
		{"members.yaml", func(part content.Catalog) { cat.Members = part.Members }},
		{"initiatives.yaml", func(part content.Catalog) { cat.Initiatives = part.Initiatives }},
	}
	for _, t := range tables {
		path := filepath.Join(dataDir, t.file)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				warns = append(warns, Warning{Path: path, Msg: "data file missing, section left empty"})
				continue
			}
			return content.Catalog{}, nil, err
		}
		var part content.Catalog
		if err := yaml.Unmarshal(data, &part); err != nil {
			return content.Catalog{}, nil, fmt.Errorf("%s: %w", path, err)
		}
		t.take(part)
	}

	for i := range cat.Events {
		e := &cat.Events[i]
		e.When = ParseTime(e.Date, loc)
		if e.Date != "" && e.When.IsZero() {
			warns = append(warns, Warning{
				Path: filepath.Join(dataDir, "events.yaml"),
				Msg:  fmt.Sprintf("event %q: unrecognised date %q", e.Title, e.Date),
			})
		}
	}

	if err := cat.Validate(); err != nil {
		return content.Catalog{}, nil, fmt.Errorf("%s: %w", dataDir, err)
	}
	return cat, warns, nil
}
