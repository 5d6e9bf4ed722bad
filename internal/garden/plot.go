package garden

// Plant is one planted item. Planted is unix seconds at the moment the sow
// request was accepted.
type Plant struct {
	PlantType string `json:"plant_type"`
	Planted   uint64 `json:"planted"`
}

// Plot is a garden's plants in planting order. Order is part of the signed content.
type Plot struct {
	Plants []Plant `json:"plants"`
}

func (p Plot) Len() int {
	return len(p.Plants)
}

func (p Plot) IsEmpty() bool {
	return len(p.Plants) == 0
}

// Clone returns a plot that shares no backing array with p.
func (p Plot) Clone() Plot {
	plants := make([]Plant, len(p.Plants))
	copy(plants, p.Plants)
	return Plot{Plants: plants}
}

// SignedState is the garden as the client holds it between requests.
type SignedState struct {
	NatureApproved Approval `json:"nature_approved,omitzero"`
	Plot           Plot     `json:"plot"`
}
