package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type pendingAction struct {
	action Action
	actor  *Actor
}

// Game holds the entire game state.
//
// Participant input methods and snapshot queries lock the game. The
// accessors that actions use (LiveActors, Visitors, Kill, Feedback, ...)
// expect the caller to already hold the lock, which is the case inside
// Action.Execute.
type Game struct {
	ID string

	mu       sync.Mutex
	cfg      GameConfig
	catalog  *Catalog
	bus      *Bus
	log      *zap.Logger
	rng      *rand.Rand
	clock    Clock
	tribunal *Tribunal

	actors        []*Actor
	graveyard     []Tombstone
	phase         GamePhase
	turn          int
	lastDeathTurn int
	inputLocked   bool
	roleList      []string

	jail         map[*Actor]*Actor // jailor -> prisoner, for the current night
	partyPlanned bool
	lynchedToday bool
	diedThisTurn map[*Actor]bool

	pending   []Event         // public messages held until daybreak
	extras    []pendingAction // actions scheduled for the next night sequence
	resolving bool
	nightMail []Event // private messages held until the resolver finishes

	result    *Result
	stop      context.CancelFunc
	abandoned bool
	done      chan struct{}
	doneOnce  sync.Once
}

// Option customises a new game.
type Option func(*Game)

func WithLogger(l *zap.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithRand injects the random source used for setup draws and tie-breaks.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

func WithID(id string) Option {
	return func(g *Game) { g.ID = id }
}

// NewGame creates a game in PhaseInit. Participants join with
// AddParticipant, then Setup assigns roles and Run drives the turn cycle.
func NewGame(cfg GameConfig, cat *Catalog, opts ...Option) *Game {
	g := &Game{
		ID:           uuid.NewString(),
		cfg:          cfg.withDefaults(),
		catalog:      cat,
		log:          zap.NewNop(),
		clock:        RealClock{},
		phase:        PhaseInit,
		jail:         make(map[*Actor]*Actor),
		diedThisTurn: make(map[*Actor]bool),
		done:         make(chan struct{}),
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		seed := uint64(g.cfg.Seed)
		if seed == 0 {
			seed = rand.Uint64()
		}
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	g.log = g.log.With(zap.String("game", g.ID))
	g.bus = NewBus(g.cfg.BusQueueSize, g.log)
	g.tribunal = newTribunal(g)
	return g
}

// AddParticipant seats a new actor. Only allowed before Setup.
func (g *Game) AddParticipant(name string, kind ParticipantKind) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	name = strings.TrimSpace(name)
	if g.phase != PhaseInit {
		return ErrWrongPhase
	}
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrNotAllowed)
	}
	if g.find(name) != nil {
		return ErrDuplicateName
	}
	if len(g.actors) >= g.cfg.MaxParticipants {
		return ErrTooManyParticipants
	}
	g.actors = append(g.actors, newActor(len(g.actors), Participant{Name: name, Kind: kind}))
	return nil
}

// --- snapshot queries (locking) ---

func (g *Game) Phase() GamePhase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) Turn() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turn
}

// Graveyard returns the tombstones in order of death.
func (g *Game) Graveyard() []Tombstone {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Tombstone(nil), g.graveyard...)
}

// Result is nil until the game concludes.
func (g *Game) Result() *Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result == nil {
		return nil
	}
	r := *g.result
	return &r
}

// RoleList returns the role names drawn by Setup, in slot order.
func (g *Game) RoleList() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.roleList...)
}

// Actor looks an actor up by name, ignoring case.
func (g *Game) Actor(name string) (*Actor, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	a := g.find(name)
	return a, a != nil
}

// Done is closed when Run returns or the game is abandoned.
func (g *Game) Done() <-chan struct{} { return g.done }

// Abandon releases a game that will never run, typically after Setup
// failed. Done is closed and Result stays nil. It has no effect once Run
// has started.
func (g *Game) Abandon() {
	g.mu.Lock()
	if g.stop != nil {
		g.mu.Unlock()
		return
	}
	g.abandoned = true
	g.mu.Unlock()
	g.finish()
}

func (g *Game) finish() {
	g.doneOnce.Do(func() { close(g.done) })
}

// MessageBus returns the bus drivers subscribe to.
func (g *Game) MessageBus() *Bus { return g.bus }

// Tribunal returns the day-time trial state machine.
func (g *Game) Tribunal() *Tribunal { return g.tribunal }

// --- accessors for actions (caller holds the lock) ---

func (g *Game) Config() GameConfig { return g.cfg }
func (g *Game) Catalog() *Catalog  { return g.catalog }
func (g *Game) Rand() *rand.Rand   { return g.rng }
func (g *Game) Log() *zap.Logger   { return g.log }

// Actors returns every actor in seat order.
func (g *Game) Actors() []*Actor {
	return append([]*Actor(nil), g.actors...)
}

// LiveActors returns the actors still playing, in seat order.
func (g *Game) LiveActors() []*Actor { return g.liveActors() }

// Visitors returns the live actors other than t that currently target t.
func (g *Game) Visitors(t *Actor) []*Actor {
	var out []*Actor
	for _, a := range g.actors {
		if a != t && a.alive && a.IsTargeting(t) {
			out = append(out, a)
		}
	}
	return out
}

// Prisoner returns the actor jailed by jailor tonight, or nil.
func (g *Game) Prisoner(jailor *Actor) *Actor { return g.jail[jailor] }

// Jailed reports whether a spends tonight in a cell.
func (g *Game) Jailed(a *Actor) bool {
	for _, p := range g.jail {
		if p == a {
			return true
		}
	}
	return false
}

// PlanParty cancels tonight's jailing.
func (g *Game) PlanParty() { g.partyPlanned = true }

func (g *Game) PartyPlanned() bool { return g.partyPlanned }

// DiedThisTurn reports whether a died during the current turn.
func (g *Game) DiedThisTurn(a *Actor) bool { return g.diedThisTurn[a] }

// ScheduleSuicide queues a self-inflicted death for a at the start of the
// next night sequence.
func (g *Game) ScheduleSuicide(a *Actor, cause string) {
	g.extras = append(g.extras, pendingAction{action: newSuicide(cause), actor: a})
}

// Kill declares a dead immediately with cause. Used by day-time kills; the
// end conditions are re-checked afterwards.
func (g *Game) Kill(a *Actor, cause string) bool {
	if !g.killActor(a, cause) {
		return false
	}
	g.Announce("Death", g.deathReveal(a, cause))
	g.checkEnd()
	return true
}

// Transform replaces a's role with a fresh instance of role name.
func (g *Game) Transform(a *Actor, name string) error {
	r, err := g.catalog.Create(name, g.cfg.RoleOverrides[name])
	if err != nil {
		return err
	}
	obscured := a.Obscured()
	a.role = r
	a.abilityUses = r.AbilityUses
	if !obscured {
		a.visibleRole = r.Name
	}
	g.Notify(a, fmt.Sprintf("You are now a %s.", r.Name))
	return nil
}

// Feedback sends private feedback about a's own action.
func (g *Game) Feedback(a *Actor, body string) {
	g.private(EventPrivateFeedback, a, body)
}

// Notify sends a private message to a.
func (g *Game) Notify(a *Actor, body string) {
	g.private(EventPrivateMessage, a, body)
}

// Announce publishes a public message. Announcements made at night are held
// until daybreak.
func (g *Game) Announce(title, body string) {
	if body == "" {
		return
	}
	e := Event{Kind: EventAnnouncement, Title: title, Body: body}
	if g.phase == PhaseNight || g.phase == PhaseNightSequence {
		g.pending = append(g.pending, e)
		return
	}
	g.publish(e)
}

// --- participant input (locking) ---

// ChooseTargets overwrites name's target list. Targets are validated when
// the action runs. In daylight, instant day actions fire immediately.
func (g *Game) ChooseTargets(name string, targets ...string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	a, err := g.liveActor(name)
	if err != nil {
		return g.drop(name, "choose targets", err)
	}
	switch {
	case g.phase == PhaseInit || g.phase == PhaseConcluded:
		return g.drop(name, "choose targets", ErrWrongPhase)
	case g.phase == PhaseNightSequence || g.inputLocked:
		return g.drop(name, "choose targets", ErrInputLocked)
	}

	ts := make([]*Actor, 0, len(targets))
	for _, n := range targets {
		t := g.find(n)
		if t == nil {
			return g.drop(name, "choose targets", fmt.Errorf("%w: %q", ErrActorNotFound, n))
		}
		ts = append(ts, t)
	}
	a.ChooseTargets(ts...)

	if g.phase == PhaseDaylight {
		fired := false
		for _, act := range a.role.DayActions {
			if act.Instant() && g.perform(act, a) != OutcomeNone {
				fired = true
			}
		}
		// reveals, courts and shootings change the tally or the quorum
		if fired {
			g.tribunal.Recount()
		}
	}
	return nil
}

// PutOnVest wears a vest for tonight.
func (g *Game) PutOnVest(name string) error {
	return g.vestInput(name, "put on vest", (*Actor).PutOnVest)
}

// TakeOffVest removes tonight's vest without spending it.
func (g *Game) TakeOffVest(name string) error {
	return g.vestInput(name, "take off vest", (*Actor).TakeOffVest)
}

func (g *Game) vestInput(name, op string, fn func(*Actor) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	a, err := g.liveActor(name)
	if err != nil {
		return g.drop(name, op, err)
	}
	if g.phase != PhaseNight || g.inputLocked {
		return g.drop(name, op, ErrWrongPhase)
	}
	if err := fn(a); err != nil {
		return g.drop(name, op, err)
	}
	return nil
}

// SetLastWill stores the text revealed when name dies.
func (g *Game) SetLastWill(name, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	a, err := g.liveActor(name)
	if err != nil {
		return g.drop(name, "set last will", err)
	}
	a.lastWill = strings.TrimSpace(text)
	return nil
}

// SetDeathNote stores the note a killer leaves on victims.
func (g *Game) SetDeathNote(name, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	a, err := g.liveActor(name)
	if err != nil {
		return g.drop(name, "set death note", err)
	}
	if !a.role.IsKiller() {
		return g.drop(name, "set death note", fmt.Errorf("%w: %s cannot kill", ErrNotAllowed, a.role.Name))
	}
	a.deathNote = strings.TrimSpace(text)
	return nil
}

// Say posts a public chat line during the day.
func (g *Game) Say(name, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	a, err := g.liveActor(name)
	if err != nil {
		return g.drop(name, "say", err)
	}
	if !g.phase.IsDay() {
		return g.drop(name, "say", ErrWrongPhase)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return g.drop(name, "say", fmt.Errorf("%w: empty message", ErrNotAllowed))
	}
	kind := EventPlayerPublic
	if a.Kind == Automated {
		kind = EventBotPublic
	}
	g.publish(Event{Kind: kind, From: a.Name, Body: text})
	return nil
}

// --- internals ---

func (g *Game) find(name string) *Actor {
	for _, a := range g.actors {
		if strings.EqualFold(a.Name, name) {
			return a
		}
	}
	return nil
}

func (g *Game) liveActor(name string) (*Actor, error) {
	a := g.find(name)
	if a == nil {
		return nil, fmt.Errorf("%w: %q", ErrActorNotFound, name)
	}
	if a.role == nil {
		return nil, ErrWrongPhase
	}
	if !a.alive {
		return nil, ErrActorDead
	}
	return a, nil
}

func (g *Game) drop(name, op string, err error) error {
	g.log.Debug("input dropped",
		zap.String("actor", name),
		zap.String("op", op),
		zap.Int("turn", g.turn),
		zap.Stringer("phase", g.phase),
		zap.Error(err),
	)
	return err
}

func (g *Game) liveActors() []*Actor {
	var out []*Actor
	for _, a := range g.actors {
		if a.alive {
			out = append(out, a)
		}
	}
	return out
}

func (g *Game) liveEvils() []*Actor {
	var out []*Actor
	for _, a := range g.liveActors() {
		if a.role.IsEvil() {
			out = append(out, a)
		}
	}
	return out
}

func (g *Game) countAffiliation(f Affiliation) int {
	n := 0
	for _, a := range g.liveActors() {
		if a.role.Affiliation == f {
			n++
		}
	}
	return n
}

func (g *Game) liveHumans() int {
	n := 0
	for _, a := range g.liveActors() {
		if a.Kind == Human {
			n++
		}
	}
	return n
}

func (g *Game) publish(e Event) {
	e.GameID = g.ID
	e.Turn = g.turn
	e.Phase = g.phase
	g.bus.Publish(e)
}

func (g *Game) private(kind EventKind, a *Actor, body string) {
	if a == nil || body == "" {
		return
	}
	a.inbox = append(a.inbox, body)
	e := Event{Kind: kind, To: a.Name, Body: body}
	if g.resolving {
		g.nightMail = append(g.nightMail, e)
		return
	}
	g.publish(e)
}

func (g *Game) indicate(from *Actor, body string) {
	g.publish(Event{Kind: EventIndicator, From: from.Name, Body: body})
}

func (g *Game) indicateAnon(body string) {
	g.publish(Event{Kind: EventIndicator, Body: body})
}

func (g *Game) flushPending() {
	pending := g.pending
	g.pending = nil
	for _, e := range pending {
		g.publish(e)
	}
}

// killActor marks a dead and writes its tombstone. It reports false when a
// was already dead.
func (g *Game) killActor(a *Actor, cause string) bool {
	if !a.alive {
		return false
	}
	a.alive = false
	a.vestActive = false

	ts := Tombstone{
		Actor:   a.Name,
		Index:   a.Index,
		Turn:    g.turn,
		Phase:   g.phase,
		Epitaph: cause,
	}
	for _, at := range a.attacks {
		if at.By != nil && at.By.deathNote != "" {
			ts.DeathNotes = append(ts.DeathNotes, at.By.deathNote)
		}
	}
	g.graveyard = append(g.graveyard, ts)
	g.lastDeathTurn = g.turn
	g.diedThisTurn[a] = true

	g.log.Info("actor died",
		zap.String("actor", a.Name),
		zap.String("role", a.role.Name),
		zap.String("cause", cause),
		zap.Int("turn", g.turn),
		zap.Stringer("phase", g.phase),
	)

	for _, exe := range g.actors {
		if exe.exeTarget != a || exe.role.Win != WinExecutionerTarget {
			continue
		}
		switch {
		case cause == CauseLynch:
			exe.exeWon = true
		case exe.alive && g.cfg.ExecutionerBecomesJesterOnFailure:
			if err := g.Transform(exe, "Jester"); err != nil {
				g.log.Error("executioner transform failed", zap.String("actor", exe.Name), zap.Error(err))
			}
		}
	}
	return true
}

func (g *Game) deathReveal(a *Actor, cause string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s was %s. Their role was %s.", a.Name, cause, a.visibleRole)
	if a.lastWill != "" {
		fmt.Fprintf(&b, " Last will: %s", a.lastWill)
	}
	for _, t := range g.graveyard {
		if t.Index == a.Index {
			for _, n := range t.DeathNotes {
				fmt.Fprintf(&b, " A note was found: %s", n)
			}
		}
	}
	return b.String()
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
