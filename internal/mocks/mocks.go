package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"messenger-service/internal/models"
	"messenger-service/internal/repositories"
)

var (
	_ repositories.UserRepository      = (*UserRepositoryMock)(nil)
	_ repositories.FileRepository      = (*FileRepositoryMock)(nil)
	_ repositories.DialogRepository    = (*DialogRepositoryMock)(nil)
	_ repositories.MessageRepository   = (*MessageRepositoryMock)(nil)
	_ repositories.RoomRepository      = (*RoomRepositoryMock)(nil)
	_ repositories.FriendRepository    = (*FriendRepositoryMock)(nil)
	_ repositories.CommunityRepository = (*CommunityRepositoryMock)(nil)
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) LoginExists(ctx context.Context, login string) (bool, error) {
	args := m.Called(ctx, login)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, params models.CreateUserParams) (models.User, error) {
	args := m.Called(ctx, params)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetByLogin(ctx context.Context, login string) (models.User, error) {
	args := m.Called(ctx, login)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, id int) (models.User, error) {
	args := m.Called(ctx, id)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetSummary(ctx context.Context, authUserID, userID int) (models.UserSummary, error) {
	args := m.Called(ctx, authUserID, userID)
	var user models.UserSummary
	if val := args.Get(0); val != nil {
		user = val.(models.UserSummary)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) ListUsers(ctx context.Context, authUserID int, category models.UserListCategory) ([]models.UserSummary, error) {
	args := m.Called(ctx, authUserID, category)
	var list []models.UserSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.UserSummary)
	}
	return list, args.Error(1)
}

func (m *UserRepositoryMock) SetOnline(ctx context.Context, userID int) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserRepositoryMock) SetOffline(ctx context.Context, userID int) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type FileRepositoryMock struct {
	mock.Mock
}

func (m *FileRepositoryMock) GetUserImage(ctx context.Context, userID int) (models.File, error) {
	args := m.Called(ctx, userID)
	var file models.File
	if val := args.Get(0); val != nil {
		file = val.(models.File)
	}
	return file, args.Error(1)
}

func (m *FileRepositoryMock) SaveUserImage(ctx context.Context, userID int, image models.File) (models.File, error) {
	args := m.Called(ctx, userID, image)
	var file models.File
	if val := args.Get(0); val != nil {
		file = val.(models.File)
	}
	return file, args.Error(1)
}

func (m *FileRepositoryMock) GetRoomImage(ctx context.Context, roomID int) (models.File, error) {
	args := m.Called(ctx, roomID)
	var file models.File
	if val := args.Get(0); val != nil {
		file = val.(models.File)
	}
	return file, args.Error(1)
}

type DialogRepositoryMock struct {
	mock.Mock
}

func (m *DialogRepositoryMock) ClearEmptyDialogs(ctx context.Context, userID int) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DialogRepositoryMock) EnsureDialog(ctx context.Context, userID, otherID int) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

func (m *DialogRepositoryMock) ListDialogs(ctx context.Context, userID int, search string) ([]models.DialogListItem, error) {
	args := m.Called(ctx, userID, search)
	var list []models.DialogListItem
	if val := args.Get(0); val != nil {
		list = val.([]models.DialogListItem)
	}
	return list, args.Error(1)
}

func (m *DialogRepositoryMock) GetDialogListItem(ctx context.Context, userID, otherID int) (models.DialogListItem, error) {
	args := m.Called(ctx, userID, otherID)
	var item models.DialogListItem
	if val := args.Get(0); val != nil {
		item = val.(models.DialogListItem)
	}
	return item, args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) ListDirectMessages(ctx context.Context, userID, otherID, limit, offset int) ([]models.Message, error) {
	args := m.Called(ctx, userID, otherID, limit, offset)
	var list []models.Message
	if val := args.Get(0); val != nil {
		list = val.([]models.Message)
	}
	return list, args.Error(1)
}

func (m *MessageRepositoryMock) CountDirectMessages(ctx context.Context, userID, otherID int) (int, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Int(0), args.Error(1)
}

func (m *MessageRepositoryMock) CountUnreadDirect(ctx context.Context, userID, fromID int) (int, error) {
	args := m.Called(ctx, userID, fromID)
	return args.Int(0), args.Error(1)
}

func (m *MessageRepositoryMock) SendDirectMessage(ctx context.Context, fromID, toID int, text string) (models.Message, error) {
	args := m.Called(ctx, fromID, toID, text)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) MarkDirectRead(ctx context.Context, userID, fromID int) (int64, error) {
	args := m.Called(ctx, userID, fromID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepositoryMock) ListRoomMessages(ctx context.Context, roomID, limit, offset int) ([]models.Message, error) {
	args := m.Called(ctx, roomID, limit, offset)
	var list []models.Message
	if val := args.Get(0); val != nil {
		list = val.([]models.Message)
	}
	return list, args.Error(1)
}

func (m *MessageRepositoryMock) CountRoomMessages(ctx context.Context, roomID int) (int, error) {
	args := m.Called(ctx, roomID)
	return args.Int(0), args.Error(1)
}

func (m *MessageRepositoryMock) CountUnreadRoom(ctx context.Context, userID, roomID int) (int, error) {
	args := m.Called(ctx, userID, roomID)
	return args.Int(0), args.Error(1)
}

func (m *MessageRepositoryMock) SendRoomMessage(ctx context.Context, fromID, roomID int, text string) (models.Message, error) {
	args := m.Called(ctx, fromID, roomID, text)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) MarkRoomRead(ctx context.Context, userID, roomID int) (int64, error) {
	args := m.Called(ctx, userID, roomID)
	return args.Get(0).(int64), args.Error(1)
}

type RoomRepositoryMock struct {
	mock.Mock
}

func (m *RoomRepositoryMock) CreateRoom(ctx context.Context, params models.CreateRoomParams) (int, error) {
	args := m.Called(ctx, params)
	return args.Int(0), args.Error(1)
}

func (m *RoomRepositoryMock) GetRoom(ctx context.Context, roomID int) (models.Room, error) {
	args := m.Called(ctx, roomID)
	var room models.Room
	if val := args.Get(0); val != nil {
		room = val.(models.Room)
	}
	return room, args.Error(1)
}

func (m *RoomRepositoryMock) GetRoomInfo(ctx context.Context, userID, roomID int) (models.RoomInfo, error) {
	args := m.Called(ctx, userID, roomID)
	var info models.RoomInfo
	if val := args.Get(0); val != nil {
		info = val.(models.RoomInfo)
	}
	return info, args.Error(1)
}

func (m *RoomRepositoryMock) ListRooms(ctx context.Context, userID int, search string) ([]models.DialogListItem, error) {
	args := m.Called(ctx, userID, search)
	var list []models.DialogListItem
	if val := args.Get(0); val != nil {
		list = val.([]models.DialogListItem)
	}
	return list, args.Error(1)
}

func (m *RoomRepositoryMock) ListMembers(ctx context.Context, userID, roomID int) ([]models.UserSummary, error) {
	args := m.Called(ctx, userID, roomID)
	var list []models.UserSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.UserSummary)
	}
	return list, args.Error(1)
}

func (m *RoomRepositoryMock) IsMember(ctx context.Context, roomID, userID int) (bool, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Bool(0), args.Error(1)
}

type FriendRepositoryMock struct {
	mock.Mock
}

func (m *FriendRepositoryMock) AddRequest(ctx context.Context, fromID, toID int) error {
	args := m.Called(ctx, fromID, toID)
	return args.Error(0)
}

func (m *FriendRepositoryMock) RemoveRequest(ctx context.Context, fromID, toID int) (bool, error) {
	args := m.Called(ctx, fromID, toID)
	return args.Bool(0), args.Error(1)
}

func (m *FriendRepositoryMock) AcceptRequest(ctx context.Context, fromID, toID int) error {
	args := m.Called(ctx, fromID, toID)
	return args.Error(0)
}

func (m *FriendRepositoryMock) RemoveFriend(ctx context.Context, userID, friendID int) (bool, error) {
	args := m.Called(ctx, userID, friendID)
	return args.Bool(0), args.Error(1)
}

type CommunityRepositoryMock struct {
	mock.Mock
}

func (m *CommunityRepositoryMock) NameExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *CommunityRepositoryMock) CreateCommunity(ctx context.Context, params models.CreateCommunityParams) (models.Community, error) {
	args := m.Called(ctx, params)
	var community models.Community
	if val := args.Get(0); val != nil {
		community = val.(models.Community)
	}
	return community, args.Error(1)
}
