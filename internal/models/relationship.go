package models

import "strings"

// RelationshipType enumerates the built-in relationship kinds. The "custom"
// type carries its display name in the edge's CustomType field.
type RelationshipType string

const (
	RelationFamily    RelationshipType = "family"
	RelationFriend    RelationshipType = "friend"
	RelationRival     RelationshipType = "rival"
	RelationEnemy     RelationshipType = "enemy"
	RelationRomantic  RelationshipType = "romantic"
	RelationColleague RelationshipType = "colleague"
	RelationMentor    RelationshipType = "mentor"
	RelationCustom    RelationshipType = "custom"
)

// Edge is a single undirected relationship between two characters, keyed by
// the canonical ordered pair (IDLow < IDHigh). Storing one record per pair
// is what keeps the symmetric adjacency view consistent without a paired
// mirror write.
type Edge struct {
	IDLow       string           `json:"idLow"`
	IDHigh      string           `json:"idHigh"`
	Type        RelationshipType `json:"type"`
	Description string           `json:"description"`
	CustomType  string           `json:"customType,omitempty"`
}

// EdgeKey returns the canonical storage key for a character pair, ordering
// the ids so that (a,b) and (b,a) address the same edge.
func EdgeKey(a, b string) (low, high string) {
	if strings.Compare(a, b) <= 0 {
		return a, b
	}
	return b, a
}

// EdgeView is one direction of the materialized adjacency map handed to
// callers, matching the reference layout relationships[idA][idB].
type EdgeView struct {
	Type        RelationshipType `json:"type"`
	Description string           `json:"description"`
	CustomType  string           `json:"customType,omitempty"`
}

// GraphNode and GraphLink form the render-ready relationship graph. Links
// whose endpoints no longer resolve to a character are skipped at build
// time, not cleaned out of storage.
type GraphNode struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type GraphLink struct {
	Source string           `json:"source"`
	Target string           `json:"target"`
	Type   RelationshipType `json:"type"`
	Label  string           `json:"label,omitempty"`
}

type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}
