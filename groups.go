package sdkwa

import (
	"context"
	"io"
	"net/http"
)

func (c *Client) CreateGroup(ctx context.Context, groupName string, chatIDs []string, opts ...CallOption) (*CreateGroupResponse, error) {
	if chatIDs == nil {
		chatIDs = []string{}
	}
	return invoke[CreateGroupResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/createGroup",
		JSON:   map[string]any{"groupName": groupName, "chatIds": chatIDs},
	}, opts)
}

func (c *Client) UpdateGroupName(ctx context.Context, groupID, groupName string, opts ...CallOption) (*UpdateGroupNameResponse, error) {
	return invoke[UpdateGroupNameResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/updateGroupName",
		JSON:   map[string]any{"groupId": groupID, "groupName": groupName},
	}, opts)
}

func (c *Client) GetGroupData(ctx context.Context, groupID string, opts ...CallOption) (*GroupData, error) {
	return invoke[GroupData](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/getGroupData",
		JSON:   map[string]any{"groupId": groupID},
	}, opts)
}

func (c *Client) AddGroupParticipant(ctx context.Context, groupID, participantChatID string, opts ...CallOption) (*GroupParticipantResponse, error) {
	return c.participantCall(ctx, "/addGroupParticipant", groupID, participantChatID, opts)
}

func (c *Client) RemoveGroupParticipant(ctx context.Context, groupID, participantChatID string, opts ...CallOption) (*GroupParticipantResponse, error) {
	return c.participantCall(ctx, "/removeGroupParticipant", groupID, participantChatID, opts)
}

func (c *Client) SetGroupAdmin(ctx context.Context, groupID, participantChatID string, opts ...CallOption) (*GroupParticipantResponse, error) {
	return c.participantCall(ctx, "/setGroupAdmin", groupID, participantChatID, opts)
}

func (c *Client) RemoveAdmin(ctx context.Context, groupID, participantChatID string, opts ...CallOption) (*GroupParticipantResponse, error) {
	return c.participantCall(ctx, "/removeAdmin", groupID, participantChatID, opts)
}

func (c *Client) participantCall(ctx context.Context, path, groupID, participantChatID string, opts []CallOption) (*GroupParticipantResponse, error) {
	return invoke[GroupParticipantResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   path,
		JSON:   map[string]any{"groupId": groupID, "participantChatId": participantChatID},
	}, opts)
}

func (c *Client) LeaveGroup(ctx context.Context, groupID string, opts ...CallOption) (*LeaveGroupResponse, error) {
	return invoke[LeaveGroupResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/leaveGroup",
		JSON:   map[string]any{"groupId": groupID},
	}, opts)
}

func (c *Client) SetGroupPicture(ctx context.Context, groupID, fileName string, image io.Reader, opts ...CallOption) (*SetGroupPictureResponse, error) {
	return invoke[SetGroupPictureResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/setGroupPicture",
		File:   &FilePart{Field: "file", FileName: fileName, Reader: image},
		Form:   map[string]string{"groupId": groupID},
	}, opts)
}
