// Package host abstracts the messaging platform bridge that surrounds the
// embedded gallery: credential and identity reads, navigation primitives,
// and theme parameters.
package host

// Identity is the user snapshot the host supplies alongside the credential.
// It is display data only and never an authorization mechanism on its own.
type Identity struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// DisplayName returns the name shown in the gallery header.
func (i Identity) DisplayName() string {
	if i.LastName != "" {
		return i.FirstName + " " + i.LastName
	}
	return i.FirstName
}

// Theme holds the host-supplied display colors.
type Theme struct {
	BackgroundColor string
	TextColor       string
	HintColor       string
	ButtonColor     string
	ButtonTextColor string
}

// Bridge is the surface the host platform exposes to the embedded app.
type Bridge interface {
	// Embedded reports whether the app runs inside a recognized host
	// environment. When false the gallery serves its public preview mode.
	Embedded() bool

	// InitData returns the raw signed credential string, empty if the host
	// holds none. Synchronous, never blocks.
	InitData() string

	// Identity returns the user snapshot supplied alongside the credential.
	Identity() (Identity, bool)

	Theme() Theme

	// Ready signals the host that the app finished initializing.
	Ready()

	// Expand asks the host to expand the view to full height.
	Expand()

	// OpenLink opens an external deep link through the host.
	OpenLink(url string) error

	// Share opens the host share sheet with the given text and link.
	Share(text, url string) error

	// ShowAlert displays a host-styled alert message.
	ShowAlert(message string)

	// OnBack installs the handler for the host back-navigation affordance.
	OnBack(handler func())
}
