package service

import (
	"context"

	"character-studio/backend/internal/store"
	"character-studio/backend/pkg/logger"
)

// CompactReport summarizes one repair pass.
type CompactReport struct {
	CharactersKept  int `json:"charactersKept"`
	FoldersDropped  int `json:"foldersDropped"`
	EdgesDropped    int `json:"edgesDropped"`
	HistoriesPruned int `json:"historiesPruned"`
}

// CompactService is the explicit repair operation: it runs the self-healing
// character rewrite, drops structurally corrupt folders, strips dangling
// relationship edges and prunes version histories whose owner is gone.
// Normal operation never does any of this eagerly; Compact runs at startup
// and on demand.
type CompactService struct {
	characters    *store.CharacterStore
	versions      *store.VersionStore
	folders       *store.FolderStore
	relationships *store.RelationshipStore
	log           *logger.Logger
}

func NewCompactService(characters *store.CharacterStore, versions *store.VersionStore, folders *store.FolderStore, relationships *store.RelationshipStore, log *logger.Logger) *CompactService {
	return &CompactService{
		characters:    characters,
		versions:      versions,
		folders:       folders,
		relationships: relationships,
		log:           log,
	}
}

// Run executes one full repair pass.
func (s *CompactService) Run(ctx context.Context) (*CompactReport, error) {
	report := &CompactReport{}

	characters, err := s.characters.ListValid(ctx)
	if err != nil {
		return nil, err
	}
	report.CharactersKept = len(characters)

	validIDs := make(map[string]bool, len(characters))
	for i := range characters {
		validIDs[characters[i].ID] = true
	}

	dropped, err := s.folders.Compact(ctx)
	if err != nil {
		return nil, err
	}
	report.FoldersDropped = dropped

	edges, err := s.relationships.StripDangling(ctx, validIDs)
	if err != nil {
		return nil, err
	}
	report.EdgesDropped = edges

	owners, err := s.versions.CharacterIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range owners {
		if validIDs[id] {
			continue
		}
		if err := s.versions.DeleteFor(ctx, id); err != nil {
			return nil, err
		}
		report.HistoriesPruned++
	}

	s.log.Info("compaction finished",
		"characters_kept", report.CharactersKept,
		"folders_dropped", report.FoldersDropped,
		"edges_dropped", report.EdgesDropped,
		"histories_pruned", report.HistoriesPruned,
	)
	return report, nil
}
