package seed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/nexus-backend/internal/data/cache"
	"github.com/yungbote/nexus-backend/internal/data/repos"
	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/modules/extraction"
	"github.com/yungbote/nexus-backend/internal/modules/roadmapgraph"
	"github.com/yungbote/nexus-backend/internal/platform/dbctx"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

// File is the on-disk catalog of suggested roadmaps and code challenges.
type File struct {
	Roadmaps   []Roadmap   `yaml:"roadmaps"`
	Challenges []Challenge `yaml:"challenges"`
}

type Roadmap struct {
	Title string `yaml:"title"`
	Nodes []Node `yaml:"nodes"`
}

type Node struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Content      string   `yaml:"content"`
	Dependencies []string `yaml:"dependencies"`
}

type Challenge struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	Difficulty   string `yaml:"difficulty"`
	Category     string `yaml:"category"`
	TemplateCode string `yaml:"template_code"`
	SolutionCode string `yaml:"solution_code"`
}

type Result struct {
	RoadmapsCreated   int
	RoadmapsSkipped   int
	ChallengesCreated int
	ChallengesSkipped int
}

func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(bytes.NewReader(raw))
}

// Parse decodes a seed document, rejecting unknown fields.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &f, nil
}

type Seeder struct {
	log        *logger.Logger
	roadmaps   repos.RoadmapRepo
	challenges repos.ChallengeRepo
	catalog    cache.Catalog
}

func NewSeeder(log *logger.Logger, roadmaps repos.RoadmapRepo, challenges repos.ChallengeRepo, catalog cache.Catalog) *Seeder {
	if catalog == nil {
		catalog = cache.Nop()
	}
	return &Seeder{
		log:        log.With("service", "Seeder"),
		roadmaps:   roadmaps,
		challenges: challenges,
		catalog:    catalog,
	}
}

// Apply inserts every roadmap and challenge whose title is not yet present.
// Running it twice is a no-op.
func (s *Seeder) Apply(ctx context.Context, f *File) (Result, error) {
	var res Result
	dbc := dbctx.From(ctx)

	for i, r := range f.Roadmaps {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			return res, fmt.Errorf("roadmaps[%d]: title is required", i)
		}
		existing, err := s.roadmaps.GetSuggestedByTitle(dbc, title)
		if err != nil {
			return res, err
		}
		if existing != nil {
			res.RoadmapsSkipped++
			continue
		}
		nodes, err := roadmapgraph.Build(toRecord(r))
		if err != nil {
			return res, fmt.Errorf("roadmaps[%d] %q: %w", i, title, err)
		}
		if issues := roadmapgraph.Inspect(nodes); !issues.Empty() {
			s.log.Warn("seed roadmap has dependency issues", "title", title,
				"dangling", issues.Dangling, "cyclic", issues.Cyclic)
		}
		if _, err := s.roadmaps.Create(dbc, &domain.Roadmap{
			Title: title,
			Type:  domain.RoadmapTypeSuggested,
			Nodes: nodes,
		}); err != nil {
			return res, fmt.Errorf("create roadmap %q: %w", title, err)
		}
		res.RoadmapsCreated++
	}

	for i, c := range f.Challenges {
		title := strings.TrimSpace(c.Title)
		if title == "" {
			return res, fmt.Errorf("challenges[%d]: title is required", i)
		}
		existing, err := s.challenges.GetByTitle(dbc, title)
		if err != nil {
			return res, err
		}
		if existing != nil {
			res.ChallengesSkipped++
			continue
		}
		if _, err := s.challenges.Create(dbc, &domain.Challenge{
			Title:        title,
			Description:  c.Description,
			Difficulty:   c.Difficulty,
			Category:     c.Category,
			TemplateCode: c.TemplateCode,
			SolutionCode: c.SolutionCode,
		}); err != nil {
			return res, fmt.Errorf("create challenge %q: %w", title, err)
		}
		res.ChallengesCreated++
	}

	if res.RoadmapsCreated+res.ChallengesCreated > 0 {
		if err := s.catalog.Invalidate(ctx, cache.KeySuggestedRoadmaps, cache.KeyChallenges); err != nil {
			s.log.Warn("catalog invalidation failed", "error", err)
		}
	}
	s.log.Info("seed applied",
		"roadmaps_created", res.RoadmapsCreated, "roadmaps_skipped", res.RoadmapsSkipped,
		"challenges_created", res.ChallengesCreated, "challenges_skipped", res.ChallengesSkipped)
	return res, nil
}

func toRecord(r Roadmap) *extraction.RoadmapRecord {
	rec := &extraction.RoadmapRecord{Title: r.Title}
	for _, n := range r.Nodes {
		rec.Nodes = append(rec.Nodes, extraction.NodeRecord{
			NodeID:       n.ID,
			Title:        n.Title,
			Content:      n.Content,
			Dependencies: n.Dependencies,
		})
	}
	return rec
}
