// Package resolve maps platform player records to the statistics provider's
// external ids, exactly when the platform embeds the id and fuzzily otherwise.
package resolve

import (
	"context"
	"strings"
	"sync"

	"github.com/cwilhelm/gridiron/internal/domain/model"
	"github.com/cwilhelm/gridiron/pkg/metrics"
)

// DefaultIndexWeeks is how many of the most recent stat weeks feed the fuzzy
// index.
const DefaultIndexWeeks = 4

var suffixTokens = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
}

// NormalizeName lowercases, strips periods, apostrophes and hyphens,
// collapses whitespace and drops generational suffix tokens. It is
// idempotent, which matters: the same normalization is applied when building
// the index and when probing it.
func NormalizeName(name string) string {
	s := strings.ToLower(name)
	s = strings.NewReplacer(".", "", "'", "", "-", "").Replace(s)
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if suffixTokens[f] {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// lastInitial returns the first letter of the last token of a normalized
// name, or empty for an empty name.
func lastInitial(normalized string) string {
	fields := strings.Fields(normalized)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1][:1]
}

// RowSource supplies the stat rows the fuzzy index is built from.
type RowSource interface {
	// RecentRows returns all rows from the most recent n available weeks.
	RecentRows(ctx context.Context, n int) []model.StatRow
}

// index is the three-way fuzzy lookup over recent stat rows. Two players
// colliding on a key resolve last-write-wins; the fuzzy keys cannot support
// more precision than that, and the limitation is accepted.
type index struct {
	byNameTeamPos map[string]string
	byNamePos     map[string]string
	byInitialTeam map[string]string
}

func buildIndex(rows []model.StatRow) *index {
	idx := &index{
		byNameTeamPos: make(map[string]string),
		byNamePos:     make(map[string]string),
		byInitialTeam: make(map[string]string),
	}
	for _, row := range rows {
		name := NormalizeName(row.Name)
		if name == "" || row.PlayerID == "" {
			continue
		}
		team := strings.ToUpper(strings.TrimSpace(row.Team))
		pos := strings.ToUpper(strings.TrimSpace(row.Position))
		idx.byNameTeamPos[name+"|"+team+"|"+pos] = row.PlayerID
		idx.byNamePos[name+"|"+pos] = row.PlayerID
		if initial := lastInitial(name); initial != "" && team != "" {
			idx.byInitialTeam[initial+"|"+team] = row.PlayerID
		}
	}
	return idx
}

// Resolver resolves platform players to external stat ids. Resolutions are
// cached per platform id for the session; the fuzzy index is built lazily at
// most once from the row source.
type Resolver struct {
	source     RowSource
	indexWeeks int

	mu    sync.Mutex
	idx   *index
	cache map[string]string
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithIndexWeeks sets how many recent stat weeks feed the fuzzy index.
func WithIndexWeeks(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.indexWeeks = n
		}
	}
}

// NewResolver creates a Resolver reading fuzzy-index rows from source.
func NewResolver(source RowSource, opts ...Option) *Resolver {
	r := &Resolver{
		source:     source,
		indexWeeks: DefaultIndexWeeks,
		cache:      make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the external stat id for a platform player, or empty when
// no mapping exists. Empty means "no external data available" and is not an
// error. The explicit platform-embedded id always wins and never consults
// the fuzzy index.
func (r *Resolver) Resolve(ctx context.Context, p model.Player) string {
	if p.GSISID != "" {
		metrics.RecordResolverHit("explicit")
		return p.GSISID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.cache[p.ID]; ok {
		return id
	}

	if r.idx == nil {
		r.idx = buildIndex(r.source.RecentRows(ctx, r.indexWeeks))
	}

	id, strategy := r.probe(p)
	r.cache[p.ID] = id
	if id == "" {
		metrics.RecordResolverMiss()
	} else {
		metrics.RecordResolverHit(strategy)
	}
	return id
}

func (r *Resolver) probe(p model.Player) (id, strategy string) {
	name := NormalizeName(playerName(p))
	team := strings.ToUpper(strings.TrimSpace(p.Team))
	pos := strings.ToUpper(strings.TrimSpace(p.Position))
	if name == "" {
		return "", ""
	}

	if id, ok := r.idx.byNameTeamPos[name+"|"+team+"|"+pos]; ok {
		return id, "name_team_pos"
	}
	if id, ok := r.idx.byNamePos[name+"|"+pos]; ok {
		return id, "name_pos"
	}
	initial := lastInitial(name)
	if p.LastName != "" {
		initial = lastInitial(NormalizeName(p.LastName))
	}
	if initial != "" && team != "" {
		if id, ok := r.idx.byInitialTeam[initial+"|"+team]; ok {
			return id, "initial_team"
		}
	}
	return "", ""
}

func playerName(p model.Player) string {
	if p.FullName != "" {
		return p.FullName
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
