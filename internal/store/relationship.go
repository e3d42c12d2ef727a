package store

import (
	"context"
	"strings"
	"sync"

	"character-studio/backend/internal/models"
	apperrors "character-studio/backend/pkg/errors"
	"character-studio/backend/pkg/storage"
)

// RelationshipStore keeps one canonical edge per character pair, keyed by
// the ordered id pair. The symmetric relationships[a][b] / [b][a] view is
// materialized on read, so there is no mirrored write that could half-fail
// and leave the map asymmetric.
type RelationshipStore struct {
	mu      sync.Mutex
	adapter storage.Adapter
}

func NewRelationshipStore(adapter storage.Adapter) *RelationshipStore {
	return &RelationshipStore{adapter: adapter}
}

func edgeKey(a, b string) string {
	low, high := models.EdgeKey(a, b)
	return low + "|" + high
}

func (s *RelationshipStore) loadEdges(ctx context.Context) (map[string]models.Edge, error) {
	edges := make(map[string]models.Edge)
	if err := load(ctx, s.adapter, keyRelationships, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

// Set creates or overwrites the single edge between the pair. Only one
// relationship may exist per pair; a second Set replaces the first.
func (s *RelationshipStore) Set(ctx context.Context, idA, idB string, relType models.RelationshipType, description, customType string) error {
	if idA == "" || idB == "" {
		return apperrors.NewValidationError("relationship requires two character ids")
	}
	if idA == idB {
		return apperrors.NewValidationError("a character cannot relate to itself")
	}
	if relType == "" {
		return apperrors.NewValidationError("relationship type is required")
	}
	if relType == models.RelationCustom && strings.TrimSpace(customType) == "" {
		return apperrors.NewValidationError("custom relationships require a custom type name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	edges, err := s.loadEdges(ctx)
	if err != nil {
		return err
	}
	low, high := models.EdgeKey(idA, idB)
	edges[edgeKey(idA, idB)] = models.Edge{
		IDLow:       low,
		IDHigh:      high,
		Type:        relType,
		Description: description,
		CustomType:  customType,
	}
	return save(ctx, s.adapter, keyRelationships, edges)
}

// Remove deletes the edge between the pair; false when no edge existed.
func (s *RelationshipStore) Remove(ctx context.Context, idA, idB string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	edges, err := s.loadEdges(ctx)
	if err != nil {
		return false, err
	}
	key := edgeKey(idA, idB)
	if _, ok := edges[key]; !ok {
		return false, nil
	}
	delete(edges, key)
	return true, save(ctx, s.adapter, keyRelationships, edges)
}

// RemoveAllForCharacter strips every edge touching the character.
func (s *RelationshipStore) RemoveAllForCharacter(ctx context.Context, characterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edges, err := s.loadEdges(ctx)
	if err != nil {
		return err
	}
	changed := false
	for key, edge := range edges {
		if edge.IDLow == characterID || edge.IDHigh == characterID {
			delete(edges, key)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return save(ctx, s.adapter, keyRelationships, edges)
}

// ClearAll drops the whole relationship collection.
func (s *RelationshipStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save(ctx, s.adapter, keyRelationships, map[string]models.Edge{})
}

// Edges returns every stored edge, dangling ones included.
func (s *RelationshipStore) Edges(ctx context.Context) ([]models.Edge, error) {
	edges, err := s.loadEdges(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]models.Edge, 0, len(edges))
	for _, e := range edges {
		list = append(list, e)
	}
	return list, nil
}

// Adjacency materializes the symmetric map-of-maps view. Both directions of
// every edge are always present, and no character appears with an empty
// adjacency map.
func (s *RelationshipStore) Adjacency(ctx context.Context) (map[string]map[string]models.EdgeView, error) {
	edges, err := s.loadEdges(ctx)
	if err != nil {
		return nil, err
	}
	adjacency := make(map[string]map[string]models.EdgeView)
	put := func(from, to string, e models.Edge) {
		if adjacency[from] == nil {
			adjacency[from] = make(map[string]models.EdgeView)
		}
		adjacency[from][to] = models.EdgeView{
			Type:        e.Type,
			Description: e.Description,
			CustomType:  e.CustomType,
		}
	}
	for _, e := range edges {
		put(e.IDLow, e.IDHigh, e)
		put(e.IDHigh, e.IDLow, e)
	}
	return adjacency, nil
}

// Graph builds the render-ready node/link view over the given characters.
// Edges whose endpoints no longer resolve are skipped, not deleted; the
// eager sweep belongs to Compact.
func (s *RelationshipStore) Graph(ctx context.Context, characters []models.Character) (*models.Graph, error) {
	edges, err := s.loadEdges(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(characters))
	graph := &models.Graph{
		Nodes: make([]models.GraphNode, 0, len(characters)),
		Links: make([]models.GraphLink, 0, len(edges)),
	}
	for i := range characters {
		known[characters[i].ID] = true
		graph.Nodes = append(graph.Nodes, models.GraphNode{
			ID:       characters[i].ID,
			Name:     characters[i].Name,
			ImageURL: characters[i].ImageURL,
		})
	}
	for _, e := range edges {
		if !known[e.IDLow] || !known[e.IDHigh] {
			continue
		}
		label := string(e.Type)
		if e.Type == models.RelationCustom {
			label = e.CustomType
		}
		graph.Links = append(graph.Links, models.GraphLink{
			Source: e.IDLow,
			Target: e.IDHigh,
			Type:   e.Type,
			Label:  label,
		})
	}
	return graph, nil
}

// StripDangling removes edges with an endpoint outside the valid id set.
// Returns how many edges were dropped.
func (s *RelationshipStore) StripDangling(ctx context.Context, validIDs map[string]bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	edges, err := s.loadEdges(ctx)
	if err != nil {
		return 0, err
	}
	dropped := 0
	for key, edge := range edges {
		if !validIDs[edge.IDLow] || !validIDs[edge.IDHigh] {
			delete(edges, key)
			dropped++
		}
	}
	if dropped == 0 {
		return 0, nil
	}
	return dropped, save(ctx, s.adapter, keyRelationships, edges)
}
