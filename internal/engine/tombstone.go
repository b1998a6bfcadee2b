package engine

// Epitaphs recorded on tombstones.
const (
	CauseMafia     = "shot with a large caliber weapon"
	CauseVigilante = "shot with a small caliber pistol"
	CauseSerial    = "stabbed repeatedly"
	CauseMass      = "murdered by a mass murderer"
	CauseTriad     = "sliced by a sword"
	CauseVeteran   = "shot by a veteran on alert"
	CauseJailor    = "executed by the jailor"
	CauseLynch     = "lynched by the town"
	CauseDuel      = "killed in a duel"
	CauseConstable = "shot by the constable"
	CauseSuicide   = "committed suicide"
	CauseHaunt     = "died of guilt"
	CauseUnknown   = "died mysteriously"
)

// Tombstone is a graveyard entry. One is written per actor, at death.
type Tombstone struct {
	Actor      string    `json:"actor"`
	Index      int       `json:"index"`
	Turn       int       `json:"turn"`
	Phase      GamePhase `json:"phase"`
	Epitaph    string    `json:"epitaph"`
	DeathNotes []string  `json:"death_notes,omitempty"`
}
