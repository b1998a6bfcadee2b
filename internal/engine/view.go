package engine

// PublicViewData is the game state everyone may see.
type PublicViewData struct {
	ID        string            `json:"id"`
	Phase     string            `json:"phase"`
	Turn      int               `json:"turn"`
	Actors    []PublicActorData `json:"actors"`
	Graveyard []Tombstone       `json:"graveyard"`
	RoleList  []string          `json:"role_list,omitempty"`
	Tribunal  TribunalView      `json:"tribunal"`
	Result    *Result           `json:"result,omitempty"`
}

type PublicActorData struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Alive    bool   `json:"alive"`
	Role     string `json:"role,omitempty"` // dead or revealed actors only
	LastWill string `json:"last_will,omitempty"`
	Revealed bool   `json:"revealed,omitempty"`
}

type TribunalView struct {
	Mode        string            `json:"mode"`
	Accused     string            `json:"accused,omitempty"`
	LynchesLeft int               `json:"lynches_left"`
	Anonymous   bool              `json:"anonymous,omitempty"`
	MultiLynch  bool              `json:"multi_lynch,omitempty"`
	Tally       map[string]int    `json:"tally,omitempty"`
	Votes       map[string]string `json:"votes,omitempty"` // voter -> candidate, hidden in court
	Skips       int               `json:"skips,omitempty"`
}

// PublicView returns the game state visible to every driver.
func (g *Game) PublicView() PublicViewData {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.publicView()
}

func (g *Game) publicView() PublicViewData {
	pv := PublicViewData{
		ID:        g.ID,
		Phase:     g.phase.String(),
		Turn:      g.turn,
		Graveyard: append([]Tombstone(nil), g.graveyard...),
		RoleList:  append([]string(nil), g.roleList...),
		Tribunal:  g.tribunal.view(),
	}
	if g.result != nil {
		r := *g.result
		pv.Result = &r
	}
	for _, a := range g.actors {
		ad := PublicActorData{
			Name:     a.Name,
			Kind:     a.Kind.String(),
			Alive:    a.alive,
			Revealed: a.revealed,
		}
		if a.role != nil && (!a.alive || a.revealed || g.phase == PhaseConcluded) {
			ad.Role = a.visibleRole
		}
		if !a.alive {
			ad.LastWill = a.lastWill
		}
		pv.Actors = append(pv.Actors, ad)
	}
	return pv
}

func (t *Tribunal) view() TribunalView {
	tv := TribunalView{
		Mode:        t.mode.String(),
		LynchesLeft: t.lynchesLeft,
		Anonymous:   t.anonymous,
		MultiLynch:  t.multiLynch,
	}
	if t.accused != nil {
		tv.Accused = t.accused.Name
	}
	if len(t.trialVotes) > 0 {
		tv.Tally = make(map[string]int)
		if !t.anonymous {
			tv.Votes = make(map[string]string)
		}
		for v, c := range t.trialVotes {
			if !v.alive || !c.alive {
				continue
			}
			tv.Tally[c.Name] += t.weight(v)
			if tv.Votes != nil {
				tv.Votes[v.Name] = c.Name
			}
		}
	}
	for v := range t.skipVotes {
		if v.alive {
			tv.Skips++
		}
	}
	return tv
}

// PlayerViewData adds what only one actor knows.
type PlayerViewData struct {
	PublicViewData
	Name              string   `json:"name"`
	Alive             bool     `json:"alive"`
	Role              string   `json:"role,omitempty"`
	Description       string   `json:"description,omitempty"`
	Affiliation       string   `json:"affiliation,omitempty"`
	Immunities        []string `json:"immunities,omitempty"`
	AbilityUses       int      `json:"ability_uses"`
	Vests             int      `json:"vests"`
	VestActive        bool     `json:"vest_active,omitempty"`
	Targets           []string `json:"targets,omitempty"`
	ValidTargets      []string `json:"valid_targets,omitempty"`
	Teammates         []string `json:"teammates,omitempty"`
	ExecutionerTarget string   `json:"executioner_target,omitempty"`
	LastWill          string   `json:"last_will,omitempty"`
	DeathNote         string   `json:"death_note,omitempty"`
	Inbox             []string `json:"inbox,omitempty"`
}

// ViewFor returns the state visible to the named actor. Unknown names get
// the public view only.
func (g *Game) ViewFor(name string) PlayerViewData {
	g.mu.Lock()
	defer g.mu.Unlock()

	pv := PlayerViewData{PublicViewData: g.publicView()}
	a := g.find(name)
	if a == nil {
		return pv
	}
	pv.Name = a.Name
	pv.Alive = a.alive
	pv.Vests = a.vests
	pv.VestActive = a.vestActive
	pv.LastWill = a.lastWill
	pv.DeathNote = a.deathNote
	pv.Inbox = append([]string(nil), a.inbox...)
	for _, t := range a.targets {
		if t != nil {
			pv.Targets = append(pv.Targets, t.Name)
		}
	}
	if a.role == nil {
		return pv
	}

	pv.Role = a.role.Name
	pv.Description = a.role.Description
	pv.Affiliation = a.role.Affiliation.String()
	pv.Immunities = a.role.Immunities.Names()
	pv.AbilityUses = a.abilityUses
	if a.exeTarget != nil {
		pv.ExecutionerTarget = a.exeTarget.Name
	}
	if aff := a.role.Affiliation; aff == Mafia || aff == Triad {
		for _, o := range g.actors {
			if o != a && o.role != nil && o.role.Affiliation == aff {
				pv.Teammates = append(pv.Teammates, o.Name)
			}
		}
	}
	if a.alive {
		for _, t := range g.actors {
			if g.validTarget(a, t) {
				pv.ValidTargets = append(pv.ValidTargets, t.Name)
			}
		}
	}
	return pv
}
