package models

// Product is the hidden answer of a game. Products are owned by the catalog
// and are read-only from the game engine's point of view.
type Product struct {
	// ID is the unique identifier for the product
	ID string

	// Name is the answer participants must guess
	Name string

	// Clues are the ordered hints revealed during a game
	Clues []string

	// SponsorID is the sponsor offering the product
	SponsorID string
}

// RevealedClues returns the first count clues
func (p *Product) RevealedClues(count int) []string {
	if count <= 0 {
		return []string{}
	}
	if count > len(p.Clues) {
		count = len(p.Clues)
	}
	clues := make([]string, count)
	copy(clues, p.Clues[:count])
	return clues
}
