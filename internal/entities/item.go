package entities

// CustomItem is an entry of the user-maintained item catalog. JSON keys match
// the historical backup format, so exports from older sheets import cleanly.
type CustomItem struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"nome"`
	Slot       string   `json:"slot,omitempty"`
	ItemLevel  int      `json:"li,omitempty"`
	Price      int      `json:"prezzo,omitempty"`
	Rarity     string   `json:"rarita,omitempty"`
	HouseRule  bool     `json:"hr,omitempty"`
	Activation string   `json:"azioni,omitempty"`
	Save       string   `json:"ts,omitempty"`
	Effect     string   `json:"effetto,omitempty"`
	Details    []string `json:"dettagli,omitempty"`
}
