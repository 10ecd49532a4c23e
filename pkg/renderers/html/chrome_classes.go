package html

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassPage         ChromeClass = "ss-page"
	ClassCard         ChromeClass = "ss-card"
	ClassHeader       ChromeClass = "ss-header"
	ClassSubtitle     ChromeClass = "ss-subtitle"
	ClassForm         ChromeClass = "ss-form"
	ClassField        ChromeClass = "ss-field"
	ClassFieldInvalid ChromeClass = "ss-field--invalid"
	ClassIcon         ChromeClass = "ss-icon"
	ClassRequired     ChromeClass = "ss-required"
	ClassDescription  ChromeClass = "ss-description"
	ClassError        ChromeClass = "ss-error"
	ClassErrors       ChromeClass = "ss-errors"
	ClassNotice       ChromeClass = "ss-notice"
	ClassActions      ChromeClass = "ss-actions"
)

type chromeClasses struct {
	Page         string
	Card         string
	Header       string
	Subtitle     string
	Form         string
	Field        string
	FieldInvalid string
	Icon         string
	Required     string
	Description  string
	Error        string
	Errors       string
	Notice       string
	Actions      string
}

func defaultChromeClasses() chromeClasses {
	return chromeClasses{
		Page:         string(ClassPage),
		Card:         string(ClassCard),
		Header:       string(ClassHeader),
		Subtitle:     string(ClassSubtitle),
		Form:         string(ClassForm),
		Field:        string(ClassField),
		FieldInvalid: string(ClassFieldInvalid),
		Icon:         string(ClassIcon),
		Required:     string(ClassRequired),
		Description:  string(ClassDescription),
		Error:        string(ClassError),
		Errors:       string(ClassErrors),
		Notice:       string(ClassNotice),
		Actions:      string(ClassActions),
	}
}
