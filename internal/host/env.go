package host

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
)

// InitDataVar is the environment variable the env bridge reads the raw
// credential string from.
const InitDataVar = "TELEGRAM_INIT_DATA"

// EnvBridge reads host values from the process environment. It stands in for
// the in-app browser bridge when the gallery core runs outside a WebView.
type EnvBridge struct {
	backHandler func()
}

// NewEnvBridge creates a bridge backed by the process environment.
func NewEnvBridge() *EnvBridge {
	return &EnvBridge{}
}

// Embedded reports whether a credential is present in the environment.
func (b *EnvBridge) Embedded() bool {
	return os.Getenv(InitDataVar) != ""
}

// InitData re-reads the credential from the environment on every call, so a
// refresh observes the latest host-provided value.
func (b *EnvBridge) InitData() string {
	return os.Getenv(InitDataVar)
}

// Identity parses the user snapshot embedded in the credential string.
func (b *EnvBridge) Identity() (Identity, bool) {
	return ParseIdentity(b.InitData())
}

// Theme returns the host theme, falling back to the defaults the host uses
// when no theme parameters are set.
func (b *EnvBridge) Theme() Theme {
	return Theme{
		BackgroundColor: envOr("TELEGRAM_THEME_BG_COLOR", "#ffffff"),
		TextColor:       envOr("TELEGRAM_THEME_TEXT_COLOR", "#000000"),
		HintColor:       envOr("TELEGRAM_THEME_HINT_COLOR", "#999999"),
		ButtonColor:     envOr("TELEGRAM_THEME_BUTTON_COLOR", "#2481cc"),
		ButtonTextColor: envOr("TELEGRAM_THEME_BUTTON_TEXT_COLOR", "#ffffff"),
	}
}

func (b *EnvBridge) Ready()  {}
func (b *EnvBridge) Expand() {}

// OpenLink logs the deep link; outside a WebView there is no browser to hand
// it to, but callers still get the templated URL.
func (b *EnvBridge) OpenLink(url string) error {
	log.Printf("Opening link: %s", url)
	fmt.Println(url)
	return nil
}

// Share prints the share text and link.
func (b *EnvBridge) Share(text, url string) error {
	fmt.Println(text)
	fmt.Println(url)
	return nil
}

// ShowAlert prints the alert message.
func (b *EnvBridge) ShowAlert(message string) {
	fmt.Println(message)
}

// OnBack records the back handler.
func (b *EnvBridge) OnBack(handler func()) {
	b.backHandler = handler
}

// Detached returns the bridge used when no host environment is recognized.
// The gallery then runs in its public preview mode.
func Detached() Bridge {
	return detached{}
}

type detached struct{}

func (detached) Embedded() bool             { return false }
func (detached) InitData() string           { return "" }
func (detached) Identity() (Identity, bool) { return Identity{}, false }
func (detached) Theme() Theme               { return Theme{} }
func (detached) Ready()                     {}
func (detached) Expand()                    {}
func (detached) OpenLink(url string) error {
	fmt.Println(url)
	return nil
}
func (detached) Share(text, url string) error {
	fmt.Println(text)
	fmt.Println(url)
	return nil
}
func (detached) ShowAlert(message string) { fmt.Println(message) }
func (detached) OnBack(func())            {}

// ParseIdentity extracts the user snapshot from a raw credential string.
// The credential is a URL query string whose "user" field carries a JSON
// document.
func ParseIdentity(initData string) (Identity, bool) {
	if initData == "" {
		return Identity{}, false
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return Identity{}, false
	}

	raw := values.Get("user")
	if raw == "" {
		return Identity{}, false
	}

	var identity Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return Identity{}, false
	}
	if identity.ID == 0 {
		return Identity{}, false
	}

	return identity, true
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
