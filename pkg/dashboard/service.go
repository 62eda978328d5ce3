package dashboard

import (
	"context"

	"github.com/artihcus/portal/pkg/session"
)

type Service interface {
	Summary(ctx context.Context) (Summary, error)
}

type ServiceImpl struct {
	widgets Widgets
	feed    *ActivityFeed
}

func NewService(widgets Widgets, feed *ActivityFeed) *ServiceImpl {
	return &ServiceImpl{widgets: widgets, feed: feed}
}

func (s *ServiceImpl) Summary(ctx context.Context) (Summary, error) {
	current, err := session.Current(ctx)
	if err != nil {
		return Summary{}, err
	}

	user := User{Name: current.User.Name, Role: current.User.Role}
	if user.Name == "" {
		user.Name = DefaultName
	}
	if user.Role == "" {
		user.Role = DefaultRole
	}

	return Summary{
		Greeting: Greeting(current.User.Name),
		User:     user,
		Widgets:  s.widgets,
		Activity: s.feed.List(current.Owner()),
	}, nil
}
