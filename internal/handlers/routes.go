package handlers

import "github.com/gin-gonic/gin"

// API groups the handlers mounted under /api.
type API struct {
	Auth      *AuthHandler
	Dialogs   *DialogHandler
	Users     *UserHandler
	Friends   *FriendHandler
	Rooms     *RoomHandler
	Messages  *MessageHandler
	Community *CommunityHandler
}

// Register mounts every route. Only login and register skip requireAuth.
func (a API) Register(api *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	api.GET("/login", a.Auth.Login)
	api.POST("/register", a.Auth.Register)

	authed := api.Group("", requireAuth)

	authed.GET("/refresh-token", a.Auth.RefreshToken)
	authed.DELETE("/logout", a.Auth.Logout)

	authed.GET("/dialog-list", a.Dialogs.DialogList)
	authed.GET("/dialog-list-item", a.Dialogs.DialogListItem)
	authed.DELETE("/delete-empty-dialogs", a.Dialogs.DeleteEmptyDialogs)
	authed.GET("/dialog", a.Dialogs.Dialog)
	authed.GET("/dialog-messages-count", a.Dialogs.DialogMessagesCount)

	authed.GET("/user", a.Users.User)
	authed.GET("/image", a.Users.Image)
	authed.POST("/safe-image", a.Users.SafeImage)
	authed.GET("/user-list", a.Users.UserList)
	authed.GET("/get-friends", a.Users.Friends)
	authed.GET("/friend-request-list-to-user", a.Users.FriendRequestsToUser)
	authed.GET("/friend-request-list-from-user", a.Users.FriendRequestsFromUser)

	authed.PATCH("/add-friend-request", a.Friends.AddFriendRequest)
	authed.PATCH("/remove-friend-request", a.Friends.RemoveFriendRequest)
	authed.POST("/delete-from-friends", a.Friends.DeleteFromFriends)
	authed.POST("/apply-friend-request", a.Friends.ApplyFriendRequest)

	authed.GET("/check-community-name", a.Community.CheckCommunityName)
	authed.POST("/create-community", a.Community.CreateCommunity)

	authed.POST("/create-room", a.Rooms.CreateRoom)
	authed.GET("/get-room", a.Rooms.GetRoom)
	authed.GET("/room-image", a.Rooms.RoomImage)
	authed.GET("/current-room-info", a.Rooms.CurrentRoomInfo)
	authed.GET("/room-messages", a.Rooms.RoomMessages)
	authed.GET("/room-members", a.Rooms.RoomMembers)
	authed.GET("/room-messages-count", a.Rooms.RoomMessagesCount)

	authed.GET("/unread-messages-amount", a.Messages.UnreadMessagesAmount)
	authed.POST("/send-message", a.Messages.SendMessage)
	authed.PATCH("/read-messages", a.Messages.ReadMessages)
}
