package sdkwa

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Messenger selects the chat network a request is routed to. It is the first
// path segment after the host.
type Messenger string

const (
	MessengerWhatsApp Messenger = "whatsapp"
	MessengerTelegram Messenger = "telegram"
)

func (m Messenger) Valid() bool {
	return m == MessengerWhatsApp || m == MessengerTelegram
}

func (m Messenger) String() string {
	return string(m)
}

// ParseMessenger returns the messenger named by s. Matching is exact.
func ParseMessenger(s string) (Messenger, error) {
	m := Messenger(s)
	if !m.Valid() {
		return "", invalidMessengerError(s)
	}
	return m, nil
}

func invalidMessengerError(value string) error {
	return localWrapError(
		ErrInvalidMessenger,
		goerrors.CategoryValidation,
		fmt.Sprintf("sdkwa: invalid messenger type %q, must be 'whatsapp' or 'telegram'", value),
		"INVALID_MESSENGER",
		map[string]any{"messenger": value},
	)
}
