package engine

import (
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// Catalog is the registry of role classes.
type Catalog struct {
	roles  map[string]*Role
	order  []string
	groups map[Group][]string
}

func NewCatalog() *Catalog {
	return &Catalog{
		roles:  make(map[string]*Role),
		groups: make(map[Group][]string),
	}
}

// Register adds a role class. Every role is also placed in GroupAny and in
// the group named after its affiliation.
func (c *Catalog) Register(r *Role) {
	for _, g := range []Group{GroupAny, affiliationGroup(r.Affiliation)} {
		if !r.InGroup(g) {
			r.Groups = append(r.Groups, g)
		}
	}
	if _, dup := c.roles[r.Name]; !dup {
		c.order = append(c.order, r.Name)
		for _, g := range r.Groups {
			c.groups[g] = append(c.groups[g], r.Name)
		}
	}
	c.roles[r.Name] = r
}

func affiliationGroup(a Affiliation) Group {
	switch a {
	case Mafia:
		return GroupMafia
	case Triad:
		return GroupTriad
	case Neutral:
		return GroupNeutral
	}
	return GroupTown
}

// Lookup returns the registered descriptor for name.
func (c *Catalog) Lookup(name string) (*Role, bool) {
	r, ok := c.roles[name]
	return r, ok
}

// Names lists every registered role in registration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// HasGroup reports whether any registered role carries g.
func (c *Catalog) HasGroup(g Group) bool {
	_, ok := c.groups[g]
	return ok
}

// GroupMembers lists the roles drawable from g. Disabled roles are left out.
func (c *Catalog) GroupMembers(g Group) []*Role {
	var out []*Role
	for _, name := range c.groups[g] {
		if r := c.roles[name]; !r.Disabled {
			out = append(out, r)
		}
	}
	return out
}

// KillingRoles returns the names of roles with a kill among their night
// actions.
func (c *Catalog) KillingRoles() map[string]struct{} {
	out := make(map[string]struct{})
	for name, r := range c.roles {
		if r.IsKiller() {
			out[name] = struct{}{}
		}
	}
	return out
}

// EvilRoles lists enabled evil roles by name, sorted. Framers draw from it.
func (c *Catalog) EvilRoles() []*Role {
	var out []*Role
	for _, name := range c.order {
		if r := c.roles[name]; r.IsEvil() && !r.Disabled {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type roleOverride struct {
	Description     *string   `mapstructure:"description"`
	Immunities      *[]string `mapstructure:"immunities"`
	AbilityUses     *int      `mapstructure:"ability_uses"`
	Vests           *int      `mapstructure:"vests"`
	AllowSelfTarget *bool     `mapstructure:"allow_self_target"`
	Unique          *bool     `mapstructure:"unique"`
	Disabled        *bool     `mapstructure:"disabled"`
}

// Create instantiates role name with overrides merged over its defaults.
// Unknown override keys are a configuration error.
func (c *Catalog) Create(name string, overrides map[string]any) (*Role, error) {
	base, ok := c.roles[name]
	if !ok {
		return nil, configErr(ConfigUnknownRole, "%q", name)
	}
	r := base.Clone()
	if len(overrides) == 0 {
		return r, nil
	}

	var o roleOverride
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &o,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(overrides); err != nil {
		return nil, configErr(ConfigBadOverride, "%s: %v", name, err)
	}

	if o.Description != nil {
		r.Description = *o.Description
	}
	if o.Immunities != nil {
		imm, err := parseImmunities(*o.Immunities)
		if err != nil {
			return nil, configErr(ConfigBadOverride, "%s: %v", name, err)
		}
		r.Immunities = imm
	}
	if o.AbilityUses != nil {
		r.AbilityUses = *o.AbilityUses
	}
	if o.Vests != nil {
		r.Vests = *o.Vests
	}
	if o.AllowSelfTarget != nil {
		r.AllowSelfTarget = *o.AllowSelfTarget
	}
	if o.Unique != nil {
		r.Unique = *o.Unique
	}
	if o.Disabled != nil {
		r.Disabled = *o.Disabled
	}
	return r, nil
}

func parseImmunities(names []string) (Immunity, error) {
	var out Immunity
next:
	for _, n := range names {
		for _, k := range immunityKeys {
			if k.name == n {
				out |= k.flag
				continue next
			}
		}
		return 0, configErr(ConfigBadOverride, "unknown immunity %q", n)
	}
	return out, nil
}
