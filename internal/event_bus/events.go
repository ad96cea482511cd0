package event_bus

// ReferenceReloaded is published after a fresh reference-data fetch.
// Subscribers drop state derived from the previous roster (stored drafts).
const ReferenceReloaded EventType = "reference.reloaded"

// ReferenceReloadedData describes the freshly loaded roster sizes.
type ReferenceReloadedData struct {
	Employees int
	Plant     int
	Sites     int
}
