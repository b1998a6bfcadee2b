package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	slotName  = "Name::"
	slotGroup = "Group::"
)

// Setup expands the role list and deals one role to every participant. On a
// configuration error the game stays in PhaseInit and nothing is assigned.
func (g *Game) Setup() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseInit || g.roleList != nil {
		return ErrWrongPhase
	}
	n := len(g.actors)
	if n == 0 {
		return configErr(ConfigMalformed, "no participants")
	}
	if len(g.cfg.RoleList) < n {
		return configErr(ConfigMalformed, "%d slots for %d participants", len(g.cfg.RoleList), n)
	}

	names, err := g.expandRoleList(g.cfg.RoleList[:n])
	if err != nil {
		return err
	}
	roles := make([]*Role, n)
	for i, name := range names {
		r, err := g.catalog.Create(name, g.cfg.RoleOverrides[name])
		if err != nil {
			return err
		}
		roles[i] = r
	}

	deal := append([]*Role(nil), roles...)
	g.rng.Shuffle(len(deal), func(i, j int) { deal[i], deal[j] = deal[j], deal[i] })
	for i, a := range g.actors {
		a.assign(deal[i])
	}
	g.roleList = names

	g.publish(Event{
		Kind:  EventAnnouncement,
		Title: "Role list",
		Body:  strings.Join(names, ", "),
	})
	for _, a := range g.actors {
		g.Notify(a, fmt.Sprintf("You are the %s. %s", a.role.Name, a.role.Description))
	}
	g.assignExecutionerTargets()
	return nil
}

// expandRoleList resolves concrete slots first, then draws each group slot
// by weight from the roles still available.
func (g *Game) expandRoleList(slots []string) ([]string, error) {
	out := make([]string, len(slots))
	used := make(map[string]int)
	var groups []int

	for i, slot := range slots {
		switch {
		case strings.HasPrefix(slot, slotName):
			name := strings.TrimSpace(strings.TrimPrefix(slot, slotName))
			r, err := g.configured(name)
			if err != nil {
				return nil, err
			}
			if r.Disabled {
				return nil, configErr(ConfigUnsatisfiable, "%s cannot be dealt", name)
			}
			if r.Unique && used[name] > 0 {
				return nil, configErr(ConfigUnsatisfiable, "unique role %s listed twice", name)
			}
			used[name]++
			out[i] = name
		case strings.HasPrefix(slot, slotGroup):
			tag := Group(strings.TrimSpace(strings.TrimPrefix(slot, slotGroup)))
			if !g.catalog.HasGroup(tag) {
				return nil, configErr(ConfigUnknownGroup, "%q", tag)
			}
			groups = append(groups, i)
		default:
			return nil, configErr(ConfigMalformed, "slot %q", slot)
		}
	}

	for _, i := range groups {
		tag := Group(strings.TrimSpace(strings.TrimPrefix(slots[i], slotGroup)))
		r, err := g.draw(tag, used)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, configErr(ConfigUnsatisfiable, "no role left to draw from %s", tag)
		}
		used[r.Name]++
		out[i] = r.Name
	}
	return out, nil
}

// configured returns role name with its configured overrides applied, so
// the unique and disabled flags seen by the draw match the dealt role.
func (g *Game) configured(name string) (*Role, error) {
	return g.catalog.Create(name, g.cfg.RoleOverrides[name])
}

func (g *Game) draw(tag Group, used map[string]int) (*Role, error) {
	var pool []*Role
	var weights []float64
	total := 0.0
	for _, name := range g.catalog.groups[tag] {
		w := g.cfg.RoleWeights[name]
		if w <= 0 || g.excluded(tag, name) {
			continue
		}
		r, err := g.configured(name)
		if err != nil {
			return nil, err
		}
		if r.Disabled || (r.Unique && used[name] > 0) {
			continue
		}
		pool = append(pool, r)
		weights = append(weights, w)
		total += w
	}
	if len(pool) == 0 {
		return nil, nil
	}
	x := g.rng.Float64() * total
	for i, w := range weights {
		if x < w {
			return pool[i], nil
		}
		x -= w
	}
	return pool[len(pool)-1], nil
}

func (g *Game) excluded(tag Group, role string) bool {
	for _, e := range g.cfg.Excludes {
		if e.Group == tag && e.Role == role {
			return true
		}
	}
	return false
}

// assignExecutionerTargets gives every executioner a random town target.
// Without one the executioner becomes a Jester.
func (g *Game) assignExecutionerTargets() {
	for _, exe := range g.actors {
		if exe.role.Win != WinExecutionerTarget {
			continue
		}
		var town []*Actor
		for _, a := range g.actors {
			if a != exe && a.role.Affiliation == Town {
				town = append(town, a)
			}
		}
		if len(town) == 0 {
			if err := g.Transform(exe, "Jester"); err != nil {
				g.log.Warn("executioner has no target", zap.String("actor", exe.Name), zap.Error(err))
			}
			continue
		}
		exe.exeTarget = town[g.rng.IntN(len(town))]
		g.Notify(exe, fmt.Sprintf("Your target is %s. Get them lynched.", exe.exeTarget.Name))
	}
}
