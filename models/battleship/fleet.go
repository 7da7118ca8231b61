package battleship

const (
	FleetSize   = 10
	FleetCells  = 20
	MinShipSize = 1
	MaxShipSize = 4
)

type FleetEntry struct {
	Size int    `json:"size"`
	Name string `json:"name"`
}

var fleetCatalog = [FleetSize]FleetEntry{
	{Size: 4, Name: "Carrier"},
	{Size: 3, Name: "Submarine"},
	{Size: 3, Name: "Submarine"},
	{Size: 2, Name: "Destroyer"},
	{Size: 2, Name: "Destroyer"},
	{Size: 2, Name: "Destroyer"},
	{Size: 1, Name: "Frigate"},
	{Size: 1, Name: "Frigate"},
	{Size: 1, Name: "Frigate"},
	{Size: 1, Name: "Frigate"},
}

// FleetCatalog returns the required fleet, largest ships first.
func FleetCatalog() []FleetEntry {
	catalog := make([]FleetEntry, len(fleetCatalog))
	copy(catalog[:], fleetCatalog[:])
	return catalog
}

// FleetQuota maps every ship size to how many ships of it the fleet holds.
func FleetQuota() map[int]int {
	quota := make(map[int]int, MaxShipSize)
	for _, entry := range fleetCatalog {
		quota[entry.Size]++
	}
	return quota
}

func ShipName(size int) string {
	for _, entry := range fleetCatalog {
		if entry.Size == size {
			return entry.Name
		}
	}
	return "Ship"
}
