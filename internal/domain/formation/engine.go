// Package formation partitions a participant pool into teams.
//
// The Engine runs a multi-pass heuristic over a shuffled pool:
//
//  0. shuffle the pool and bucket it by behavioral category
//  1. seed each team with one Leader where the activity cap allows
//  2. top each team up with one Thinker and one Balanced participant
//  3. greedily fill remaining seats round-robin across the category queues
//  4. place leftovers first-fit into any team with room
//  5. swap members between teams to reach three distinct roles per team
//
// The activity cap is a hard constraint throughout. Style mix and role
// diversity are best-effort. Participants that cannot be placed are
// returned in Result.Unplaced rather than dropped.
package formation

import (
	"math/rand"
	"time"

	"github.com/okian/teammate/internal/domain/model"
)

// Engine defaults and bounds.
const (
	DefaultTeamSize    = 5
	DefaultActivityCap = 2
	MinTeamSize        = 2
	MinActivityCap     = 1

	targetRoles = 3
)

// queue order for bucketing and round-robin fill.
const (
	leaderQueue = iota
	thinkerQueue
	balancedQueue
	unknownQueue
	queueCount
)

// Result is the outcome of one formation run.
type Result struct {
	// Teams in creation order; len(Teams) == ceil(len(pool)/teamSize).
	Teams []*Team
	// Unplaced holds participants no team could take under the activity cap.
	Unplaced []model.Participant
	// Swaps counts role-diversity exchanges applied in the repair pass.
	Swaps int
}

// Placed returns the number of participants assigned to a team.
func (r Result) Placed() int {
	n := 0
	for _, t := range r.Teams {
		n += t.Len()
	}
	return n
}

// Engine forms teams. It is not safe for concurrent use; create one per run.
type Engine struct {
	teamSize    int
	activityCap int
	rng         *rand.Rand
}

// New creates an engine. Team size and activity cap are clamped to their
// minimums instead of being rejected.
func New(opts ...Option) *Engine {
	e := &Engine{
		teamSize:    DefaultTeamSize,
		activityCap: DefaultActivityCap,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.teamSize = max(e.teamSize, MinTeamSize)
	e.activityCap = max(e.activityCap, MinActivityCap)
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // shuffling, not security
	}
	return e
}

// TeamSize returns the effective (clamped) team size.
func (e *Engine) TeamSize() int { return e.teamSize }

// ActivityCap returns the effective (clamped) activity cap.
func (e *Engine) ActivityCap() int { return e.activityCap }

// FormTeams is a one-shot helper: it builds an engine and runs it once.
func FormTeams(pool []model.Participant, teamSize, activityCap int, opts ...Option) Result {
	opts = append([]Option{WithTeamSize(teamSize), WithActivityCap(activityCap)}, opts...)
	return New(opts...).Form(pool)
}

// Form partitions pool into teams. The pool slice is copied; participants
// are never modified. An empty pool yields an empty result.
func (e *Engine) Form(pool []model.Participant) Result {
	if len(pool) == 0 {
		return Result{Teams: []*Team{}, Unplaced: []model.Participant{}}
	}

	r := e.newRun(pool)
	r.seedLeaders()
	r.mixStyles()
	r.fill()
	r.redistribute()
	r.repairRoles()

	unplaced := make([]model.Participant, 0, len(r.rejected)+len(r.unplaced))
	unplaced = append(unplaced, r.rejected...)
	unplaced = append(unplaced, r.unplaced...)

	return Result{
		Teams:    r.teams,
		Unplaced: unplaced,
		Swaps:    r.swaps,
	}
}

// run holds the mutable state of one Form call. Each phase method owns it
// exclusively for its duration.
type run struct {
	teamSize    int
	activityCap int
	rng         *rand.Rand

	teams  []*Team
	queues [queueCount][]model.Participant
	cursor int // next queue for the round-robin fill

	rejected []model.Participant // dropped by the greedy fill
	unplaced []model.Participant // left over after redistribution
	swaps    int
}

// newRun shuffles a copy of pool, creates the empty teams and buckets
// participants by category.
func (e *Engine) newRun(pool []model.Participant) *run {
	shuffled := make([]model.Participant, len(pool))
	copy(shuffled, pool)
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	total := (len(shuffled) + e.teamSize - 1) / e.teamSize
	r := &run{
		teamSize:    e.teamSize,
		activityCap: e.activityCap,
		rng:         e.rng,
		teams:       make([]*Team, total),
	}
	for i := range r.teams {
		r.teams[i] = &Team{id: i + 1, members: make([]model.Participant, 0, e.teamSize)}
	}

	for _, p := range shuffled {
		q := queueFor(p.Category)
		r.queues[q] = append(r.queues[q], p)
	}
	return r
}

func queueFor(c model.Category) int {
	switch c {
	case model.Leader:
		return leaderQueue
	case model.Thinker:
		return thinkerQueue
	case model.Balanced:
		return balancedQueue
	default:
		return unknownQueue
	}
}

// placeable reports whether p may join t under the activity cap.
// Capacity is checked by each phase separately.
func (r *run) placeable(t *Team, p model.Participant) bool {
	return t.countActivity(p.Activity, -1) < r.activityCap
}

// seedLeaders makes one attempt per team to place the head of the Leader
// queue. A rejected leader goes to the back of the queue.
func (r *run) seedLeaders() {
	for _, t := range r.teams {
		if len(r.queues[leaderQueue]) == 0 {
			return
		}
		p := r.queues[leaderQueue][0]
		r.queues[leaderQueue] = r.queues[leaderQueue][1:]
		if r.placeable(t, p) {
			t.add(p)
			continue
		}
		r.queues[leaderQueue] = append(r.queues[leaderQueue], p)
	}
}

// mixStyles gives each team at most one Thinker and one Balanced member.
func (r *run) mixStyles() {
	for _, t := range r.teams {
		r.takeFirstPlaceable(t, thinkerQueue)
		r.takeFirstPlaceable(t, balancedQueue)
	}
}

func (r *run) takeFirstPlaceable(t *Team, q int) {
	if !t.hasRoom(r.teamSize) {
		return
	}
	for i, p := range r.queues[q] {
		if r.placeable(t, p) {
			t.add(p)
			r.queues[q] = append(r.queues[q][:i:i], r.queues[q][i+1:]...)
			return
		}
	}
}

// fill tops up every team from the queues in round-robin order. A candidate
// that violates the cap for the current team is dropped, not requeued.
//
// Each pull advances a cursor over Leader, Thinker, Balanced, Unknown and the
// cursor carries over from one team to the next. Pulls never restart at the
// Leader queue.
func (r *run) fill() {
	for _, t := range r.teams {
		for t.hasRoom(r.teamSize) {
			p, ok := r.next()
			if !ok {
				return
			}
			if r.placeable(t, p) {
				t.add(p)
				continue
			}
			r.rejected = append(r.rejected, p)
		}
	}
}

// next pops the head of the next non-empty queue after the cursor.
func (r *run) next() (model.Participant, bool) {
	for k := 0; k < queueCount; k++ {
		q := (r.cursor + k) % queueCount
		if len(r.queues[q]) == 0 {
			continue
		}
		p := r.queues[q][0]
		r.queues[q] = r.queues[q][1:]
		r.cursor = (q + 1) % queueCount
		return p, true
	}
	return model.Participant{}, false
}

// redistribute drains all queues, shuffles the leftovers and places each
// into the first team with room that satisfies the cap.
func (r *run) redistribute() {
	var leftovers []model.Participant
	for q := range r.queues {
		leftovers = append(leftovers, r.queues[q]...)
		r.queues[q] = nil
	}
	r.rng.Shuffle(len(leftovers), func(i, j int) {
		leftovers[i], leftovers[j] = leftovers[j], leftovers[i]
	})

	for _, p := range leftovers {
		placed := false
		for _, t := range r.teams {
			if t.hasRoom(r.teamSize) && r.placeable(t, p) {
				t.add(p)
				placed = true
				break
			}
		}
		if !placed {
			r.unplaced = append(r.unplaced, p)
		}
	}
}

// repairRoles raises each team to targetRoles distinct roles where a
// cap-safe swap with another team exists.
func (r *run) repairRoles() {
	for _, t := range r.teams {
		if len(t.RoleCounts()) >= targetRoles {
			continue
		}
		for _, other := range r.teams {
			if other == t {
				continue
			}
			r.repairAgainst(t, other)
			if len(t.RoleCounts()) >= targetRoles {
				break
			}
		}
	}
}

// repairAgainst pulls members with roles missing from t out of other.
func (r *run) repairAgainst(t, other *Team) {
	roles := t.RoleCounts()
	for j := 0; j < other.Len(); j++ {
		if _, present := roles[other.members[j].Role]; present {
			continue
		}
		i, ok := r.findSwap(t, other, roles, j)
		if !ok {
			continue
		}
		t.swap(other, i, j)
		r.swaps++

		roles = t.RoleCounts()
		if len(roles) >= targetRoles {
			return
		}
	}
}

// findSwap returns the first member of t that can trade places with
// other.members[j] without breaking the activity cap on either side. The
// outgoing member must hold a role that stays represented in t, so every
// swap adds a role to t.
func (r *run) findSwap(t, other *Team, roles map[string]int, j int) (int, bool) {
	for i := range t.members {
		if roles[t.members[i].Role] < 2 {
			continue
		}
		if r.canSwap(t, other, i, j) {
			return i, true
		}
	}
	return 0, false
}

// canSwap checks the activity cap on both sides as if a.members[i] and
// b.members[j] had already been exchanged.
func (r *run) canSwap(a, b *Team, i, j int) bool {
	pa, pb := a.members[i], b.members[j]
	aAfter := a.countActivity(pb.Activity, i) + 1
	bAfter := b.countActivity(pa.Activity, j) + 1
	return aAfter <= r.activityCap && bAfter <= r.activityCap
}
