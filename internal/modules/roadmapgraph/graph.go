package roadmapgraph

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/domain/learning"
	"github.com/yungbote/nexus-backend/internal/modules/extraction"
)

// Build turns a validated roadmap record into fresh nodes: not_started and
// with no chat history. Node ids and dependency ids are trimmed and must be
// non-blank, and node ids must be unique. A bad entry is reported as a
// schema violation on its field.
func Build(rec *extraction.RoadmapRecord) ([]learning.RoadmapNode, error) {
	if rec == nil {
		return nil, &extraction.SchemaViolationError{Kind: extraction.KindRoadmap, Fields: []string{"$"}}
	}
	seen := make(map[string]struct{}, len(rec.Nodes))
	nodes := make([]learning.RoadmapNode, 0, len(rec.Nodes))
	for i, n := range rec.Nodes {
		id := strings.TrimSpace(n.NodeID)
		if _, dup := seen[id]; dup || id == "" {
			return nil, violationAt("nodes[%d].nodeId", i)
		}
		seen[id] = struct{}{}

		deps := make([]string, 0, len(n.Dependencies))
		for j, d := range n.Dependencies {
			d = strings.TrimSpace(d)
			if d == "" {
				return nil, violationAt("nodes[%d].dependencies[%d]", i, j)
			}
			deps = append(deps, d)
		}
		nodes = append(nodes, learning.RoadmapNode{
			NodeID:       id,
			Position:     i,
			Title:        n.Title,
			Content:      n.Content,
			Status:       learning.NodeStatusNotStarted,
			Dependencies: datatypes.JSONSlice[string](deps),
		})
	}
	return nodes, nil
}

func violationAt(format string, args ...any) error {
	return &extraction.SchemaViolationError{
		Kind:   extraction.KindRoadmap,
		Fields: []string{fmt.Sprintf(format, args...)},
	}
}

// Clone deep-copies template nodes for roadmapID with status reset.
func Clone(template []learning.RoadmapNode, roadmapID uuid.UUID) []learning.RoadmapNode {
	out := make([]learning.RoadmapNode, len(template))
	for i, n := range template {
		deps := make([]string, len(n.Dependencies))
		copy(deps, n.Dependencies)
		out[i] = learning.RoadmapNode{
			RoadmapID:    roadmapID,
			NodeID:       n.NodeID,
			Position:     n.Position,
			Title:        n.Title,
			Content:      n.Content,
			Status:       learning.NodeStatusNotStarted,
			Dependencies: datatypes.JSONSlice[string](deps),
		}
	}
	return out
}

// Progress is round(100 * completed / total), or 0 for an empty roadmap.
func Progress(nodes []learning.RoadmapNode) int {
	if len(nodes) == 0 {
		return 0
	}
	completed := 0
	for _, n := range nodes {
		if n.Status == learning.NodeStatusCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(nodes))))
}

// Refresh recomputes the cached progress of r from its nodes.
func Refresh(r *learning.Roadmap) {
	if r != nil {
		r.Progress = Progress(r.Nodes)
	}
}

// ParseStatus accepts exactly the three node states.
func ParseStatus(s string) (learning.NodeStatus, error) {
	status := learning.NodeStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q is not one of not_started, in_progress, completed", domain.ErrInvalidStatus, s)
	}
	return status, nil
}

// Find returns the node with nodeID, or nil.
func Find(nodes []learning.RoadmapNode, nodeID string) *learning.RoadmapNode {
	for i := range nodes {
		if nodes[i].NodeID == nodeID {
			return &nodes[i]
		}
	}
	return nil
}

// Issues reports structural oddities that are tolerated but worth logging.
type Issues struct {
	Dangling []string // "node -> missing dep"
	Cyclic   []string // node ids left over by a topological sort
}

func (i Issues) Empty() bool { return len(i.Dangling) == 0 && len(i.Cyclic) == 0 }

// Inspect runs Kahn's algorithm over the dependency edges. Dependencies on
// unknown ids are reported and ignored for ordering.
func Inspect(nodes []learning.RoadmapNode) Issues {
	var issues Issues
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.NodeID] = true
	}

	inDegree := make(map[string]int, len(nodes))
	adj := make(map[string][]string)
	for _, n := range nodes {
		for _, dep := range n.Dependencies {
			if !known[dep] {
				issues.Dangling = append(issues.Dangling, n.NodeID+" -> "+dep)
				continue
			}
			inDegree[n.NodeID]++
			adj[dep] = append(adj[dep], n.NodeID)
		}
	}

	var queue []string
	for _, n := range nodes {
		if inDegree[n.NodeID] == 0 {
			queue = append(queue, n.NodeID)
		}
	}
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range adj[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	if visited < len(nodes) {
		for _, n := range nodes {
			if inDegree[n.NodeID] > 0 {
				issues.Cyclic = append(issues.Cyclic, n.NodeID)
			}
		}
	}
	return issues
}

// CompletedTitles collects distinct titles of completed nodes across
// roadmaps, in roadmap then node order, capped at limit when limit > 0.
func CompletedTitles(roadmaps []*learning.Roadmap, limit int) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range roadmaps {
		if r == nil {
			continue
		}
		for _, n := range r.Nodes {
			if n.Status != learning.NodeStatusCompleted {
				continue
			}
			if _, ok := seen[n.Title]; ok {
				continue
			}
			seen[n.Title] = struct{}{}
			out = append(out, n.Title)
			if limit > 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}
