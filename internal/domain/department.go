package domain

// Department represents a high-level organizational unit as returned by the
// records API. Timestamps are opaque ordered strings.
type Department struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// EntityID implements store.Entity.
func (d Department) EntityID() string { return d.ID.String() }

// DisplayName is the label used in notifications and confirmations.
func (d Department) DisplayName() string { return d.Name }

// DepartmentFields are the user-editable department fields.
type DepartmentFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Fields extracts the editable fields of d.
func (d Department) Fields() DepartmentFields {
	return DepartmentFields{Name: d.Name, Description: d.Description}
}
