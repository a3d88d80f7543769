// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// EntityRowViewModel holds presentation-ready data for one row of the entity
// table. The secret is deliberately absent.
type EntityRowViewModel struct {
	ID         int64
	Name       string
	Contact    string
	EditPath   string // POST target that opens an edit session
	DeletePath string // POST target that stages the row for deletion
}

// AlertViewModel holds a user-visible message. A zero value renders nothing.
type AlertViewModel struct {
	Message string
	IsError bool
}

// DeletePromptViewModel holds presentation data for the delete confirmation overlay.
type DeletePromptViewModel struct {
	ID         int64
	Name       string
	ConfirmURL string
	CancelURL  string
}

// ListPageViewModel holds all data needed to render the list page.
type ListPageViewModel struct {
	Rows           []EntityRowViewModel
	Query          string
	Alert          AlertViewModel
	DeletePrompt   *DeletePromptViewModel // nil when no deletion is pending
	LoadError      AlertViewModel         // set when the collection could not be fetched
	ShowingSamples bool
	CSRFToken      string
}

// FormViewModel holds presentation data for the create and update forms.
type FormViewModel struct {
	Title       string
	Action      string
	SubmitLabel string
	EntityID    int64 // zero on the create form
	Name        string
	Contact     string
	Secret      string
	Alert       AlertViewModel
	CSRFToken   string
}
