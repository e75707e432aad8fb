package components

// Component names used by the vanilla renderer and the default registry.
const (
	NameInput     = "input"
	NameTextarea  = "textarea"
	NameSelect    = "select"
	NameCheckbox  = "checkbox"
	NameRadio     = "radio"
	NameFieldset  = "fieldset"
	NameButton    = "button"
	NamePlainText = "plaintext"
)
