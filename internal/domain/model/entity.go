package model

// Entity is a single record of the trainer collection held by the backend.
// ID is assigned by the backend and never changed by the client.
type Entity struct {
	ID      int64
	Name    string
	Contact string
	Secret  string // Carried through create/update, never shown in the list.
}

// Draft holds the user-editable fields of an Entity. It is the payload of
// create and update requests.
type Draft struct {
	Name    string
	Contact string
	Secret  string
}

// Draft returns the editable fields of e.
func (e Entity) Draft() Draft {
	return Draft{Name: e.Name, Contact: e.Contact, Secret: e.Secret}
}

// WithID combines the draft with a backend-assigned id.
func (d Draft) WithID(id int64) Entity {
	return Entity{ID: id, Name: d.Name, Contact: d.Contact, Secret: d.Secret}
}
