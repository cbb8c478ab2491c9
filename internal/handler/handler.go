package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"berbagi/internal/domain"
	"berbagi/internal/middleware"
	"berbagi/internal/service"
)

type Handlers struct {
	Claim        *ClaimHandler
	Notification *NotificationHandler
	Preference   *PreferenceHandler
	Resource     *ResourceHandler
	Comment      *CommentHandler
	Message      *MessageHandler
	Shoutout     *ShoutoutHandler
	Membership   *MembershipHandler
	Trust        *TrustHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Claim:        NewClaimHandler(services.Claim),
		Notification: NewNotificationHandler(services.Notification, services.Realtime),
		Preference:   NewPreferenceHandler(services.Preference),
		Resource:     NewResourceHandler(services.Resource),
		Comment:      NewCommentHandler(services.Comment),
		Message:      NewMessageHandler(services.Message),
		Shoutout:     NewShoutoutHandler(services.Shoutout),
		Membership:   NewMembershipHandler(services.Membership),
		Trust:        NewTrustHandler(services.Trust),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

func parseIDParam(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}
