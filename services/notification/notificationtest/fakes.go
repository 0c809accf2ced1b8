// Package notificationtest provides in-memory users and a recording gateway
// for tests of code that sends push notifications.
package notificationtest

import (
	"context"
	"fmt"
	"sync"

	userRepo "nhap/database/repository/user"
	"nhap/models"

	"firebase.google.com/go/v4/messaging"
)

// Users is a map-backed UserRepository.
type Users struct {
	mu    sync.Mutex
	byID  map[string]models.User
	Err   error // returned for every lookup when set
	Reads int
}

func NewUsers(users ...models.User) *Users {
	u := &Users{byID: make(map[string]models.User)}
	for _, x := range users {
		u.byID[x.ID] = x
	}
	return u
}

func (u *Users) GetByID(_ context.Context, id string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Reads++
	if u.Err != nil {
		return nil, u.Err
	}
	x, ok := u.byID[id]
	if !ok {
		return nil, fmt.Errorf("user with id %s: %w", id, userRepo.ErrUserNotFound)
	}
	return &x, nil
}

// Gateway records every message; tokens listed in Fail are rejected.
type Gateway struct {
	mu   sync.Mutex
	Sent []*messaging.Message
	Fail map[string]error
}

func NewGateway() *Gateway {
	return &Gateway{Fail: make(map[string]error)}
}

func (g *Gateway) Send(_ context.Context, m *messaging.Message) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err, ok := g.Fail[m.Token]; ok {
		return "", err
	}
	g.Sent = append(g.Sent, m)
	return fmt.Sprintf("projects/test/messages/%d", len(g.Sent)), nil
}

// Messages returns a copy of the successfully sent messages.
func (g *Gateway) Messages() []*messaging.Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*messaging.Message, len(g.Sent))
	copy(out, g.Sent)
	return out
}

// ToToken returns the sent messages addressed to token.
func (g *Gateway) ToToken(token string) []*messaging.Message {
	var out []*messaging.Message
	for _, m := range g.Messages() {
		if m.Token == token {
			out = append(out, m)
		}
	}
	return out
}
