package report

import (
	"encoding/json"
	"io"

	"pinpoint/dom"
	"pinpoint/extract"
	"pinpoint/locator"
)

// CandidateView is the JSON form of a locator.Candidate.
type CandidateView struct {
	Family     string  `json:"family"`
	Expression string  `json:"expression"`
	Kind       string  `json:"kind"`
	Penalty    float64 `json:"penalty"`
	Reason     string  `json:"reason"`
	NonUnique  bool    `json:"nonUnique,omitempty"`
}

// SelectionView is the JSON form of a single-node result.
type SelectionView struct {
	Target      string         `json:"target"`
	Breadcrumbs []string       `json:"breadcrumbs,omitempty"`
	Structural  CandidateView  `json:"structural"`
	Ordered     CandidateView  `json:"ordered"`
	Best        CandidateView  `json:"best"`
	Image       *extract.Image `json:"image,omitempty"`
}

// GeneralizedView is the JSON form of one generalization strategy.
type GeneralizedView struct {
	Strategy       string `json:"strategy"`
	Family         string `json:"family"`
	Expression     string `json:"expression"`
	Count          int    `json:"count"`
	Viable         bool   `json:"viable"`
	ContainerDepth int    `json:"containerDepth,omitempty"`
	Reason         string `json:"reason"`
}

// GeneralizationView is the JSON form of a generalization result.
type GeneralizationView struct {
	Target             string           `json:"target"`
	StructuralWildcard GeneralizedView  `json:"structuralWildcard"`
	OrderedWildcard    GeneralizedView  `json:"orderedWildcard"`
	LCA                *GeneralizedView `json:"lca,omitempty"`
	Best               GeneralizedView  `json:"best"`
	Preview            []extract.Item   `json:"preview"`
}

// MatchesView is the JSON form of a verify result.
type MatchesView struct {
	Family     string         `json:"family"`
	Expression string         `json:"expression"`
	Count      int            `json:"count"`
	Matches    []string       `json:"matches"`
	Preview    []extract.Item `json:"preview"`
}

func candidateView(c locator.Candidate) CandidateView {
	return CandidateView{
		Family:     c.Family.String(),
		Expression: c.Expression,
		Kind:       c.Kind.String(),
		Penalty:    c.Penalty,
		Reason:     c.Reason,
		NonUnique:  c.NonUnique,
	}
}

// NewSelectionView converts a single-node result.
func NewSelectionView(target *dom.Node, sel locator.Selection, crumbs []locator.Crumb, img extract.Image) SelectionView {
	v := SelectionView{
		Target:     target.DisplayName(),
		Structural: candidateView(sel.Structural),
		Ordered:    candidateView(sel.Ordered),
		Best:       candidateView(sel.Best),
	}
	for _, c := range crumbs {
		v.Breadcrumbs = append(v.Breadcrumbs, c.Label)
	}
	if img.IsImage {
		v.Image = &img
	}
	return v
}

func generalizedView(g locator.Generalized) GeneralizedView {
	return GeneralizedView{
		Strategy:       g.Strategy.String(),
		Family:         g.Family.String(),
		Expression:     g.Expression,
		Count:          g.Count,
		Viable:         g.Viable,
		ContainerDepth: g.ContainerDepth,
		Reason:         g.Reason,
	}
}

// NewGeneralizationView converts a generalization result.
func NewGeneralizationView(target *dom.Node, g locator.Generalization, preview []extract.Item) GeneralizationView {
	v := GeneralizationView{
		Target:             target.DisplayName(),
		StructuralWildcard: generalizedView(g.StructuralWildcard),
		OrderedWildcard:    generalizedView(g.OrderedWildcard),
		Best:               generalizedView(g.Best),
		Preview:            preview,
	}
	if g.LCA != nil {
		lca := generalizedView(*g.LCA)
		v.LCA = &lca
	}
	return v
}

// NewMatchesView converts a verify result.
func NewMatchesView(family, expr string, nodes []*dom.Node, preview []extract.Item) MatchesView {
	v := MatchesView{
		Family:     family,
		Expression: expr,
		Count:      len(nodes),
		Matches:    make([]string, 0, len(nodes)),
		Preview:    preview,
	}
	for _, n := range nodes {
		v.Matches = append(v.Matches, n.DisplayName())
	}
	return v
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
