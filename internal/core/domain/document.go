package domain

// Document is the whole persisted dataset. It is loaded, mutated and saved
// as one unit.
type Document struct {
	Users        []User        `json:"users"`
	Clients      []Client      `json:"clients"`
	Houses       []House       `json:"houses"`
	Consumptions []Consumption `json:"consumptions"`
}

func NewDocument() *Document {
	d := &Document{}
	d.Normalize()
	return d
}

// Normalize replaces nil collections with empty ones so the document always
// encodes as four arrays.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Clients == nil {
		d.Clients = []Client{}
	}
	if d.Houses == nil {
		d.Houses = []House{}
	}
	if d.Consumptions == nil {
		d.Consumptions = []Consumption{}
	}
}

func (d *Document) UserByEmail(email string) (int, bool) {
	for i, u := range d.Users {
		if SameEmail(u.Email, email) {
			return i, true
		}
	}
	return -1, false
}

func (d *Document) UserByID(id string) (int, bool) {
	for i, u := range d.Users {
		if u.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (d *Document) ClientByID(id string) (Client, bool) {
	for _, c := range d.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}

func (d *Document) HouseByID(id string) (House, bool) {
	for _, h := range d.Houses {
		if h.ID == id {
			return h, true
		}
	}
	return House{}, false
}

// RemoveHouse deletes the house and every consumption recorded against it.
// It returns the number of consumptions removed.
func (d *Document) RemoveHouse(id string) (int, bool) {
	kept := d.Houses[:0]
	found := false
	for _, h := range d.Houses {
		if h.ID == id {
			found = true
			continue
		}
		kept = append(kept, h)
	}
	d.Houses = kept
	if !found {
		return 0, false
	}

	removed := 0
	records := d.Consumptions[:0]
	for _, c := range d.Consumptions {
		if c.HouseID == id {
			removed++
			continue
		}
		records = append(records, c)
	}
	d.Consumptions = records
	return removed, true
}

func (d *Document) RemoveConsumption(id string) bool {
	for i, c := range d.Consumptions {
		if c.ID == id {
			d.Consumptions = append(d.Consumptions[:i], d.Consumptions[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveUser deletes only the user record. Owned clients are left in place.
func (d *Document) RemoveUser(id string) bool {
	i, ok := d.UserByID(id)
	if !ok {
		return false
	}
	d.Users = append(d.Users[:i], d.Users[i+1:]...)
	return true
}

// ClientsOwnedBy returns the ids of the clients whose owner is userID.
func (d *Document) ClientsOwnedBy(userID string) []string {
	var ids []string
	for _, c := range d.Clients {
		if c.UserID == userID {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// RemoveClient deletes the client together with its houses and their
// consumptions.
func (d *Document) RemoveClient(id string) {
	var houses []string
	for _, h := range d.Houses {
		if h.ClientID == id {
			houses = append(houses, h.ID)
		}
	}
	for _, h := range houses {
		d.RemoveHouse(h)
	}

	kept := d.Clients[:0]
	for _, c := range d.Clients {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	d.Clients = kept
}
