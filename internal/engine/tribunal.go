package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TribunalMode is the state of the day-time trial protocol.
type TribunalMode int

const (
	TribunalClosed TribunalMode = iota
	TribunalTrialVote
	TribunalTrialDefense
	TribunalLynchVote
	TribunalJuryVerdict
	TribunalLynchVerdict
)

var tribunalNames = map[TribunalMode]string{
	TribunalClosed:       "closed",
	TribunalTrialVote:    "trial-vote",
	TribunalTrialDefense: "trial-defense",
	TribunalLynchVote:    "lynch-vote",
	TribunalJuryVerdict:  "jury-verdict",
	TribunalLynchVerdict: "lynch-verdict",
}

func (m TribunalMode) String() string {
	if s, ok := tribunalNames[m]; ok {
		return s
	}
	return "unknown"
}

// Verdict is a juror's lynch vote.
type Verdict int

const (
	VerdictAbstain Verdict = iota
	VerdictGuilty
	VerdictInnocent
)

var verdictNames = map[Verdict]string{
	VerdictAbstain:  "abstain",
	VerdictGuilty:   "guilty",
	VerdictInnocent: "innocent",
}

func (v Verdict) String() string {
	if s, ok := verdictNames[v]; ok {
		return s
	}
	return "unknown"
}

// ParseVerdict maps "guilty", "innocent" and "abstain" to a Verdict.
func ParseVerdict(s string) (Verdict, error) {
	for v, name := range verdictNames {
		if strings.EqualFold(s, name) {
			return v, nil
		}
	}
	return VerdictAbstain, fmt.Errorf("%w: unknown verdict %q", ErrNotAllowed, s)
}

// Tribunal runs trials during daylight. It shares the game's lock.
type Tribunal struct {
	g *Game

	mode    TribunalMode
	accused *Actor
	guilty  bool
	jurors  []*Actor // guilty voters of the current verdict

	trialVotes map[*Actor]*Actor
	skipVotes  map[*Actor]bool
	lynchVotes map[*Actor]Verdict

	opened      bool // trial voting has been opened today
	lynchesLeft int
	multiLynch  bool
	anonymous   bool
	court       bool
	weights     map[*Actor]int

	dayEnds  time.Time
	deadline time.Time
}

func newTribunal(g *Game) *Tribunal {
	t := &Tribunal{g: g}
	t.reset()
	return t
}

// --- locking accessors ---

func (t *Tribunal) Mode() TribunalMode {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	return t.mode
}

// Accused returns the name of the actor on trial, or "".
func (t *Tribunal) Accused() string {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	if t.accused == nil {
		return ""
	}
	return t.accused.Name
}

func (t *Tribunal) LynchesLeft() int {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	return t.lynchesLeft
}

func (t *Tribunal) Anonymous() bool {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	return t.anonymous
}

func (t *Tribunal) MultiLynch() bool {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	return t.multiLynch
}

// Active reports whether a trial is under way. The scheduler never leaves
// daylight while it is.
func (t *Tribunal) Active() bool {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	return t.active()
}

// Open starts trial voting for a day that ends DayDuration after now.
func (t *Tribunal) Open(now time.Time) {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	t.open(now)
}

// Tick advances timed transitions up to now.
func (t *Tribunal) Tick(now time.Time) {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	t.tick(now)
}

// --- hooks for instant day actions (caller holds the lock) ---

// AddLynches grants n extra lynches today and switches to the multi-lynch
// track, where reaching trial quorum skips the defense.
func (t *Tribunal) AddLynches(n int) {
	if n > 0 {
		t.lynchesLeft += n
	}
	t.multiLynch = true
}

// OpenCourt makes today's votes anonymous, gives judge the boosted weight
// and lynches as soon as a candidate reaches quorum.
func (t *Tribunal) OpenCourt(judge *Actor, weight int) {
	t.court = true
	t.anonymous = true
	t.weights[judge] = weight
}

// InCourt reports whether a court session is in progress.
func (t *Tribunal) InCourt() bool { return t.court }

// Recount re-checks the trial quorum against the current vote weights and
// the number of living actors.
func (t *Tribunal) Recount() {
	if t.mode != TribunalTrialVote || t.g.phase == PhaseConcluded {
		return
	}
	t.checkTrialQuorum(t.g.clock.Now())
}

// --- participant input ---

// SubmitTrialVote records voter's choice of candidate. An empty candidate is
// a vote to skip the day.
func (g *Game) SubmitTrialVote(voter, candidate string) error {
	if strings.TrimSpace(candidate) == "" {
		return g.SubmitSkipVote(voter)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	t := g.tribunal

	v, err := g.liveActor(voter)
	if err != nil {
		return g.drop(voter, "trial vote", err)
	}
	c, err := g.liveActor(candidate)
	if err != nil {
		return g.drop(voter, "trial vote", fmt.Errorf("%w: %v", ErrInvalidTarget, err))
	}
	if t.mode != TribunalTrialVote {
		return g.drop(voter, "trial vote", ErrTribunalClosed)
	}
	if v == c {
		return g.drop(voter, "trial vote", ErrSelfVote)
	}
	if t.trialVotes[v] == c {
		return nil
	}
	t.trialVotes[v] = c
	delete(t.skipVotes, v)

	if t.anonymous {
		g.indicateAnon(fmt.Sprintf("Someone votes to put %s on trial.", c.Name))
	} else {
		g.indicate(v, fmt.Sprintf("%s votes to put %s on trial.", v.Name, c.Name))
	}
	t.checkTrialQuorum(g.clock.Now())
	return nil
}

// SubmitSkipVote records voter's wish to end the day without a trial.
func (g *Game) SubmitSkipVote(voter string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := g.tribunal

	v, err := g.liveActor(voter)
	if err != nil {
		return g.drop(voter, "skip vote", err)
	}
	if t.mode != TribunalTrialVote {
		return g.drop(voter, "skip vote", ErrTribunalClosed)
	}
	if t.skipVotes[v] {
		return nil
	}
	t.skipVotes[v] = true
	delete(t.trialVotes, v)

	if t.anonymous {
		g.indicateAnon("Someone votes to skip the trial.")
	} else {
		g.indicate(v, fmt.Sprintf("%s votes to skip the trial.", v.Name))
	}

	humans := 0
	for a := range t.skipVotes {
		if a.alive && a.Kind == Human {
			humans++
		}
	}
	if humans >= g.liveHumans()/2+1 {
		g.Announce("Tribunal", "The town has decided not to hold a trial today.")
		t.close()
	}
	return nil
}

// SubmitLynchVote records a juror's verdict on the accused.
func (g *Game) SubmitLynchVote(voter string, verdict Verdict) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := g.tribunal

	v, err := g.liveActor(voter)
	if err != nil {
		return g.drop(voter, "lynch vote", err)
	}
	if t.mode != TribunalLynchVote {
		return g.drop(voter, "lynch vote", ErrTribunalClosed)
	}
	if v == t.accused {
		return g.drop(voter, "lynch vote", ErrAccusedCannotVote)
	}
	if prev, ok := t.lynchVotes[v]; ok && prev == verdict {
		return nil
	}
	t.lynchVotes[v] = verdict
	if t.anonymous {
		g.indicateAnon("Someone has voted.")
	} else {
		g.indicate(v, fmt.Sprintf("%s has voted.", v.Name))
	}
	return nil
}

// --- internals (caller holds the lock) ---

func (t *Tribunal) active() bool {
	switch t.mode {
	case TribunalTrialDefense, TribunalLynchVote, TribunalJuryVerdict, TribunalLynchVerdict:
		return true
	}
	return false
}

func (t *Tribunal) weight(a *Actor) int {
	if w, ok := t.weights[a]; ok {
		return w
	}
	return a.voteWeight
}

func (t *Tribunal) trialQuorum() int {
	return len(t.g.liveActors())/2 + 1
}

func (t *Tribunal) open(now time.Time) {
	t.clearVotes()
	t.opened = true
	t.mode = TribunalTrialVote
	t.dayEnds = now.Add(t.g.cfg.Timing.DayDuration.Std())
	t.g.Announce("Tribunal", fmt.Sprintf(
		"The tribunal is open. %d votes put someone on trial.", t.trialQuorum()))
}

func (t *Tribunal) close() {
	t.clearVotes()
	t.mode = TribunalClosed
}

// reset prepares the tribunal for the next day.
func (t *Tribunal) reset() {
	t.close()
	t.opened = false
	t.lynchesLeft = 1
	t.multiLynch = false
	t.anonymous = false
	t.court = false
	t.weights = make(map[*Actor]int)
}

func (t *Tribunal) clearVotes() {
	t.accused = nil
	t.guilty = false
	t.jurors = nil
	t.trialVotes = make(map[*Actor]*Actor)
	t.skipVotes = make(map[*Actor]bool)
	t.lynchVotes = make(map[*Actor]Verdict)
}

func (t *Tribunal) checkTrialQuorum(now time.Time) {
	tally := make(map[*Actor]int)
	for v, c := range t.trialVotes {
		if v.alive && c.alive {
			tally[c] += t.weight(v)
		}
	}
	quorum := t.trialQuorum()
	var accused *Actor
	for _, a := range t.g.actors {
		if tally[a] >= quorum {
			accused = a
			break
		}
	}
	if accused == nil {
		return
	}

	var voters []*Actor
	for _, v := range t.g.actors {
		if t.trialVotes[v] == accused && v.alive {
			voters = append(voters, v)
		}
	}

	g := t.g
	t.accused = accused
	switch {
	case t.court:
		g.Announce("Court", fmt.Sprintf("The court has condemned %s.", accused.Name))
		t.lynch(voters)
		t.afterLynch(now)
	case t.multiLynch:
		t.guilty = true
		t.jurors = voters
		t.mode = TribunalJuryVerdict
		t.deadline = now.Add(g.cfg.Timing.VerdictDuration.Std())
		g.Announce("Tribunal", fmt.Sprintf("%s is condemned without a defense.", accused.Name))
	default:
		t.mode = TribunalTrialDefense
		t.deadline = now.Add(g.cfg.Timing.TrialDefenseDuration.Std())
		g.Announce("Tribunal", fmt.Sprintf("%s is on trial. What is your defense?", accused.Name))
	}
}

// tick runs every transition whose deadline has passed.
func (t *Tribunal) tick(now time.Time) {
	g := t.g
	for {
		if g.phase == PhaseConcluded {
			t.mode = TribunalClosed
			return
		}
		switch t.mode {
		case TribunalTrialVote:
			if now.Before(t.dayEnds) {
				return
			}
			g.Announce("Tribunal", "The day is over.")
			t.close()
			return

		case TribunalTrialDefense:
			if now.Before(t.deadline) {
				return
			}
			t.mode = TribunalLynchVote
			t.deadline = now.Add(g.cfg.Timing.LynchVoteDuration.Std())
			g.Announce("Tribunal", fmt.Sprintf("Vote: is %s guilty or innocent?", t.accused.Name))

		case TribunalLynchVote:
			if now.Before(t.deadline) {
				return
			}
			t.tallyVerdict()
			t.mode = TribunalJuryVerdict
			t.deadline = now.Add(g.cfg.Timing.VerdictDuration.Std())

		case TribunalJuryVerdict:
			if now.Before(t.deadline) {
				return
			}
			if !t.guilty {
				t.nextTrial(now)
				continue
			}
			t.lynch(t.jurors)
			t.mode = TribunalLynchVerdict
			t.deadline = now.Add(g.cfg.Timing.VerdictDuration.Std())

		case TribunalLynchVerdict:
			if now.Before(t.deadline) {
				return
			}
			t.afterLynch(now)

		default:
			return
		}
	}
}

func (t *Tribunal) tallyVerdict() {
	g := t.g
	guilty, innocent := 0, 0
	var lines []string
	t.jurors = nil
	for _, v := range g.actors {
		verdict, ok := t.lynchVotes[v]
		if !ok || !v.alive || v == t.accused {
			continue
		}
		switch verdict {
		case VerdictGuilty:
			guilty += t.weight(v)
			t.jurors = append(t.jurors, v)
		case VerdictInnocent:
			innocent += t.weight(v)
		}
		if !t.anonymous {
			lines = append(lines, fmt.Sprintf("%s: %s", v.Name, verdict))
		}
	}
	t.guilty = guilty > innocent

	result := "innocent"
	if t.guilty {
		result = "guilty"
	}
	body := fmt.Sprintf("%s is found %s, %d to %d.", t.accused.Name, result, guilty, innocent)
	if len(lines) > 0 {
		sort.Strings(lines)
		body += " " + strings.Join(lines, "; ")
	}
	g.Announce("Verdict", body)
}

// lynch executes the accused. jurors are the guilty voters a jester may
// haunt.
func (t *Tribunal) lynch(jurors []*Actor) {
	g := t.g
	a := t.accused
	if !g.killActor(a, CauseLynch) {
		return
	}
	a.lynched = true
	g.lynchedToday = true
	if t.lynchesLeft > 0 {
		t.lynchesLeft--
	}
	g.Announce("Lynch", g.deathReveal(a, CauseLynch))

	if a.role.Win == WinJesterLynched && g.cfg.JesterRandomGuiltyVoterDies {
		var live []*Actor
		for _, j := range jurors {
			if j.alive {
				live = append(live, j)
			}
		}
		if len(live) > 0 {
			victim := live[g.rng.IntN(len(live))]
			g.ScheduleSuicide(victim, CauseHaunt)
			g.Notify(victim, "The jester's ghost will haunt you tonight.")
		}
	}
	g.checkEnd()
}

func (t *Tribunal) afterLynch(now time.Time) {
	if t.g.phase == PhaseConcluded || t.lynchesLeft <= 0 {
		t.close()
		return
	}
	t.nextTrial(now)
}

// nextTrial returns to trial voting without extending the day.
func (t *Tribunal) nextTrial(now time.Time) {
	t.clearVotes()
	t.mode = TribunalTrialVote
	if !now.Before(t.dayEnds) {
		t.g.Announce("Tribunal", "The day is over.")
		t.close()
	}
}
