package services

import (
	"besties/auth"
	"besties/store"
)

// Services - все сервисы приложения поверх одного хранилища
type Services struct {
	Users    *UserService
	Graph    *SocialGraphService
	Alerts   *NotificationComposer
	Feed     *FeedAggregator
	Posts    *PostService
	Messages *MessagingService
	Profiles *ProfileAssembler
}

func New(repo store.UserRepository, tokens *auth.JWTManager, events EventPublisher) *Services {
	if events == nil {
		events = NoopPublisher{}
	}
	alerts := NewNotificationComposer(repo)
	return &Services{
		Users:    NewUserService(repo, tokens),
		Graph:    NewSocialGraphService(repo, alerts, events),
		Alerts:   alerts,
		Feed:     NewFeedAggregator(repo),
		Posts:    NewPostService(repo, alerts, events),
		Messages: NewMessagingService(repo, events),
		Profiles: NewProfileAssembler(repo),
	}
}
