package sdkwa

// Settings mirrors the account settings document. Pointer fields are omitted
// from setSettings when nil so that only the supplied settings change.
type Settings struct {
	Wid                               string  `json:"wid,omitempty"`
	CountryInstance                   string  `json:"countryInstance,omitempty"`
	TypeAccount                       string  `json:"typeAccount,omitempty"`
	WebhookURL                        *string `json:"webhookUrl,omitempty"`
	WebhookURLToken                   *string `json:"webhookUrlToken,omitempty"`
	DelaySendMessagesMilliseconds     *int    `json:"delaySendMessagesMilliseconds,omitempty"`
	DelaySendMessagesMaxMs            *int    `json:"delaySendMessagesMaxMs,omitempty"`
	MarkIncomingMessagesReaded        *string `json:"markIncomingMessagesReaded,omitempty"`
	MarkIncomingMessagesReadedOnReply *string `json:"markIncomingMessagesReadedOnReply,omitempty"`
	OutgoingWebhook                   *string `json:"outgoingWebhook,omitempty"`
	OutgoingMessageWebhook            *string `json:"outgoingMessageWebhook,omitempty"`
	OutgoingAPIMessageWebhook         *string `json:"outgoingAPIMessageWebhook,omitempty"`
	StateWebhook                      *string `json:"stateWebhook,omitempty"`
	IncomingWebhook                   *string `json:"incomingWebhook,omitempty"`
	DeviceWebhook                     *string `json:"deviceWebhook,omitempty"`
	StatusInstanceWebhook             *string `json:"statusInstanceWebhook,omitempty"`
	KeepOnlineStatus                  *string `json:"keepOnlineStatus,omitempty"`
	ProxyInstance                     *string `json:"proxyInstance,omitempty"`
	SendFromUTC                       *string `json:"sendFromUTC,omitempty"`
	SendToUTC                         *string `json:"sendToUTC,omitempty"`
}

type SetSettingsResponse struct {
	SaveSettings bool `json:"saveSettings"`
}

type StateInstanceResponse struct {
	StateInstance string `json:"stateInstance"`
}

type WarmingPhoneStatusResponse map[string]any

type RebootResponse struct {
	IsReboot bool `json:"isReboot"`
}

type LogoutResponse struct {
	IsLogout bool `json:"isLogout"`
}

type AuthorizationCodeResponse struct {
	Status bool   `json:"status"`
	Code   string `json:"code"`
}

type RegistrationCodeMethod string

const (
	RegistrationBySMS   RegistrationCodeMethod = "sms"
	RegistrationByVoice RegistrationCodeMethod = "voice"
)

// StatusResponse is the open acknowledgement document returned by several
// account, Telegram and chat endpoints.
type StatusResponse map[string]any

// Contact is a contact card. PhoneContact is required and at least one of the
// name or company fields should be set.
type Contact struct {
	PhoneContact int64  `json:"phoneContact"`
	FirstName    string `json:"firstName,omitempty"`
	MiddleName   string `json:"middleName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	Company      string `json:"company,omitempty"`
}

type SendMessageRequest struct {
	ChatID          string `json:"chatId"`
	Message         string `json:"message"`
	QuotedMessageID string `json:"quotedMessageId,omitempty"`
	ArchiveChat     *bool  `json:"archiveChat,omitempty"`
	LinkPreview     *bool  `json:"linkPreview,omitempty"`
}

type SendContactRequest struct {
	ChatID          string  `json:"chatId"`
	Contact         Contact `json:"contact"`
	QuotedMessageID string  `json:"quotedMessageId,omitempty"`
}

type SendFileByURLRequest struct {
	ChatID          string `json:"chatId"`
	URLFile         string `json:"urlFile"`
	FileName        string `json:"fileName"`
	Caption         string `json:"caption,omitempty"`
	QuotedMessageID string `json:"quotedMessageId,omitempty"`
	ArchiveChat     *bool  `json:"archiveChat,omitempty"`
}

// SendFileByUploadRequest carries the multipart fields of sendFileByUpload.
// The file content is passed separately.
type SendFileByUploadRequest struct {
	ChatID          string
	FileName        string
	Caption         string
	QuotedMessageID string
}

type SendLocationRequest struct {
	ChatID          string  `json:"chatId"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	NameLocation    string  `json:"nameLocation,omitempty"`
	Address         string  `json:"address,omitempty"`
	QuotedMessageID string  `json:"quotedMessageId,omitempty"`
}

// SendResponse is returned by every send* endpoint.
type SendResponse struct {
	IDMessage string `json:"idMessage"`
}

type UploadFileResponse struct {
	URLFile string `json:"urlFile"`
}

type ChatHistoryRequest struct {
	ChatID string `json:"chatId"`
	Count  int    `json:"count,omitempty"`
}

// Message is one entry of a chat history or journal listing. Its shape depends
// on the message type.
type Message map[string]any

func (m Message) ID() string {
	id, _ := m["idMessage"].(string)
	return id
}

func (m Message) Type() string {
	t, _ := m["type"].(string)
	return t
}

type DownloadFileResponse struct {
	DownloadURL string `json:"downloadUrl,omitempty"`
	FileName    string `json:"fileName,omitempty"`
}

type DeleteNotificationResponse struct {
	Result bool `json:"result"`
}

type ContactEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

type ContactInfo map[string]any

type CheckWhatsappResponse struct {
	ExistsWhatsapp bool `json:"existsWhatsapp"`
}

type AvatarResponse struct {
	Existing  bool   `json:"existing"`
	URLAvatar string `json:"urlAvatar"`
}

type SetProfilePictureResponse struct {
	URLAvatar string `json:"urlAvatar,omitempty"`
	Reason    string `json:"reason,omitempty"`
	SetImage  bool   `json:"setProfilePicture"`
}

type CreateGroupResponse struct {
	Created         bool   `json:"created"`
	ChatID          string `json:"chatId"`
	GroupInviteLink string `json:"groupInviteLink"`
}

type UpdateGroupNameResponse struct {
	UpdateGroupName bool `json:"updateGroupName"`
}

type GroupParticipant struct {
	ID           string `json:"id"`
	IsAdmin      bool   `json:"isAdmin"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
}

type GroupData struct {
	GroupID         string             `json:"groupId"`
	ChatID          string             `json:"chatId,omitempty"`
	Owner           string             `json:"owner"`
	Subject         string             `json:"subject,omitempty"`
	GroupName       string             `json:"groupName,omitempty"`
	Creation        int64              `json:"creation"`
	Participants    []GroupParticipant `json:"participants"`
	GroupInviteLink string             `json:"groupInviteLink"`
}

type GroupParticipantResponse struct {
	AddParticipant    *bool `json:"addParticipant,omitempty"`
	RemoveParticipant *bool `json:"removeParticipant,omitempty"`
	SetGroupAdmin     *bool `json:"setGroupAdmin,omitempty"`
	RemoveAdmin       *bool `json:"removeAdmin,omitempty"`
}

type LeaveGroupResponse struct {
	LeaveGroup bool `json:"leaveGroup"`
}

type SetGroupPictureResponse struct {
	SetGroupPicture bool   `json:"setGroupPicture"`
	URLAvatar       string `json:"urlAvatar,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

type ReadChatResponse struct {
	SetRead bool `json:"setRead"`
}

type ClearQueueResponse struct {
	IsCleared bool `json:"isCleared"`
}

type QueuedMessage map[string]any

type CreateAppRequest struct {
	Title       string `json:"title"`
	ShortName   string `json:"shortName"`
	URL         string `json:"url"`
	Description string `json:"description"`
}
