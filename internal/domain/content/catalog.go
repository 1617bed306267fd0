package content

import (
	domainerr "clubsite/internal/domain/errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Catalog holds the static tables shown on the home, projects and
// resources pages.
type Catalog struct {
	Events      []Event         `yaml:"events"`
	Faculty     []Faculty       `yaml:"faculty"`
	Projects    []Project       `yaml:"projects"`
	Resources   []ResourceGroup `yaml:"resources"`
	Members     []Member        `yaml:"members"`
	Initiatives []Initiative    `yaml:"initiatives"`
}

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventCompleted EventStatus = "completed"
)

type Event struct {
	Title       string      `yaml:"title"`
	Date        string      `yaml:"date"`
	Type        string      `yaml:"type"`
	Location    string      `yaml:"location"`
	Description string      `yaml:"description"`
	Status      EventStatus `yaml:"status"`
	Featured    bool        `yaml:"featured"`
	// ComingSoon replaces the date label for events without a fixed day.
	ComingSoon string `yaml:"coming_soon"`

	When time.Time `yaml:"-"`
}

// Upcoming uses the explicit status when set, otherwise compares the
// event day with now. An event happening today counts as upcoming.
func (e Event) Upcoming(now time.Time) bool {
	switch e.Status {
	case EventUpcoming:
		return true
	case EventCompleted:
		return false
	}
	if e.When.IsZero() {
		return e.ComingSoon != ""
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return !e.When.Before(today)
}

type Faculty struct {
	Name       string   `yaml:"name"`
	Title      string   `yaml:"title"`
	Department string   `yaml:"department"`
	Dept       string   `yaml:"dept"`
	Lab        string   `yaml:"lab"`
	Focus      []string `yaml:"focus"`
	Status     string   `yaml:"status"`
	Bio        string   `yaml:"bio"`
	ProfileURL string   `yaml:"profile_url"`
	Image      string   `yaml:"image"`
}

type Project struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Status      string   `yaml:"status"`
	Semester    string   `yaml:"semester"`
	Domain      string   `yaml:"domain"`
	TechStack   []string `yaml:"tech_stack"`
	Featured    bool     `yaml:"featured"`
}

// Codename is the upper-case, underscore-joined label on project cards.
func (p Project) Codename() string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(p.Name)), " ", "_")
}

// Accent maps the project status to the card accent class.
func (p Project) Accent() string {
	switch strings.ToLower(strings.TrimSpace(p.Status)) {
	case "live":
		return "accent-green"
	case "in progress":
		return "accent-cyan"
	default:
		return "accent-magenta"
	}
}

// Member is one officer of the core team.
type Member struct {
	Name  string `yaml:"name"`
	Role  string `yaml:"role"`
	Image string `yaml:"image"`
}

// Initials is shown when a member has no photo.
func (m Member) Initials() string {
	var b strings.Builder
	for _, f := range strings.Fields(m.Name) {
		r := []rune(f)
		b.WriteString(strings.ToUpper(string(r[0])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

// Initiative is a research area the club works on.
type Initiative struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

type ResourceGroup struct {
	Title string         `yaml:"title"`
	Links []ResourceLink `yaml:"links"`
}

type ResourceLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// External reports whether the link leaves the site.
func (l ResourceLink) External() bool {
	return strings.HasPrefix(l.URL, "http://") || strings.HasPrefix(l.URL, "https://")
}

// Validate checks required fields of every table. Each problem is
// reported with its table and row, e.g. "events[2].title".
func (c Catalog) Validate() error {
	var ve domainerr.ValidationError
	for i, e := range c.Events {
		var item domainerr.ValidationError
		if strings.TrimSpace(e.Title) == "" {
			item.Add("title", "must not be empty")
		}
		switch e.Status {
		case "", EventUpcoming, EventCompleted:
		default:
			item.Add("status", "must be 'upcoming' or 'completed'")
		}
		ve.Merge(fmt.Sprintf("events[%d]", i), item)
	}
	for i, f := range c.Faculty {
		if strings.TrimSpace(f.Name) == "" {
			ve.Add(fmt.Sprintf("faculty[%d].name", i), "must not be empty")
		}
	}
	for i, p := range c.Projects {
		if strings.TrimSpace(p.Name) == "" {
			ve.Add(fmt.Sprintf("projects[%d].name", i), "must not be empty")
		}
	}
	for i, m := range c.Members {
		var item domainerr.ValidationError
		if strings.TrimSpace(m.Name) == "" {
			item.Add("name", "must not be empty")
		}
		if strings.TrimSpace(m.Role) == "" {
			item.Add("role", "must not be empty")
		}
		ve.Merge(fmt.Sprintf("members[%d]", i), item)
	}
	for i, in := range c.Initiatives {
		if strings.TrimSpace(in.Title) == "" {
			ve.Add(fmt.Sprintf("initiatives[%d].title", i), "must not be empty")
		}
	}
	for i, g := range c.Resources {
		for j, l := range g.Links {
			if strings.TrimSpace(l.URL) == "" {
				ve.Add(fmt.Sprintf("resources[%d].links[%d].url", i, j), "must not be empty")
			}
		}
	}
	return ve.Err()
}

// SplitEvents partitions events into upcoming (soonest first) and past
// (most recent first).
func SplitEvents(events []Event, now time.Time) (upcoming, past []Event) {
	for _, e := range events {
		if e.Upcoming(now) {
			upcoming = append(upcoming, e)
		} else {
			past = append(past, e)
		}
	}
	sortEvents(upcoming, true)
	sortEvents(past, false)
	return upcoming, past
}

func sortEvents(evs []Event, asc bool) {
	sort.SliceStable(evs, func(i, j int) bool {
		return eventLess(evs[i], evs[j], asc)
	})
}

func eventLess(a, b Event, asc bool) bool {
	// undated events sort last in either direction
	if a.When.IsZero() || b.When.IsZero() {
		return !a.When.IsZero() && b.When.IsZero()
	}
	if asc {
		return a.When.Before(b.When)
	}
	return a.When.After(b.When)
}

// ProjectGroup is the projects page section for one status.
type ProjectGroup struct {
	Status   string
	Projects []Project
}

// GroupProjects groups by status in first-seen order.
func GroupProjects(projects []Project) []ProjectGroup {
	var groups []ProjectGroup
	pos := make(map[string]int)
	for _, p := range projects {
		key := strings.TrimSpace(p.Status)
		if key == "" {
			key = "Other"
		}
		i, ok := pos[key]
		if !ok {
			i = len(groups)
			pos[key] = i
			groups = append(groups, ProjectGroup{Status: key})
		}
		groups[i].Projects = append(groups[i].Projects, p)
	}
	return groups
}
