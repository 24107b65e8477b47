package webhook

// Type is the value of a notification body's typeWebhook field. The constants
// below are the tags the API is known to send; any other string is still
// routable.
type Type string

const (
	TypeIncomingMessageReceived    Type = "incomingMessageReceived"
	TypeOutgoingMessageReceived    Type = "outgoingMessageReceived"
	TypeOutgoingAPIMessageReceived Type = "outgoingAPIMessageReceived"
	TypeOutgoingMessageStatus      Type = "outgoingMessageStatus"
	TypeStateInstanceChanged       Type = "stateInstanceChanged"
	TypeDeviceInfo                 Type = "deviceInfo"
	TypeStatusInstanceChanged      Type = "statusInstanceChanged"
)

func (t Type) String() string {
	return string(t)
}

// Notification is the envelope delivered by receiveNotification and by pushed
// webhooks.
type Notification struct {
	ReceiptID int64 `json:"receiptId"`
	Body      Body  `json:"body"`
}

// Body is the open notification document. Its fields depend on the tag.
type Body map[string]any

// TypeWebhook returns the routing tag and whether it was present as a string.
func (b Body) TypeWebhook() (Type, bool) {
	if b == nil {
		return "", false
	}
	tag, ok := b["typeWebhook"].(string)
	if !ok {
		return "", false
	}
	return Type(tag), true
}

// IDMessage returns the idMessage field, or "" when absent.
func (b Body) IDMessage() string {
	return b.stringField("idMessage")
}

// SenderChatID returns senderData.chatId, or "" when absent.
func (b Body) SenderChatID() string {
	sender, ok := b["senderData"].(map[string]any)
	if !ok {
		return ""
	}
	chatID, _ := sender["chatId"].(string)
	return chatID
}

// TextMessage returns messageData.textMessageData.textMessage, or "" for
// anything that is not a plain text message.
func (b Body) TextMessage() string {
	data, ok := b["messageData"].(map[string]any)
	if !ok {
		return ""
	}
	text, ok := data["textMessageData"].(map[string]any)
	if !ok {
		return ""
	}
	message, _ := text["textMessage"].(string)
	return message
}

func (b Body) stringField(key string) string {
	value, _ := b[key].(string)
	return value
}
