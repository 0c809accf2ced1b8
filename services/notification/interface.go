package notification

import (
	"context"
	"errors"
	"fmt"

	userRepo "nhap/database/repository/user"
	"nhap/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

var (
	// ErrUserNotFound means the recipient has no Users document.
	ErrUserNotFound = errors.New("recipient not found")
	// ErrNoPushToken means the recipient has not granted notification permission.
	ErrNoPushToken = errors.New("recipient has no FCM token")
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	// SendToUser resolves the user's FCM token and sends exactly one message.
	SendToUser(ctx context.Context, userID string, n models.PushNotification) (string, error)
	// DisplayName returns the user's name, or "" when it cannot be read.
	DisplayName(ctx context.Context, userID string) string
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	users     userRepo.UserRepository
	gateway   PushGateway
	channelID string
	logger    *zap.Logger
}

func NewDefaultNotificationService(
	users userRepo.UserRepository,
	gateway PushGateway,
	channelID string,
	logger *zap.Logger,
) (*DefaultNotificationService, error) {
	if users == nil || gateway == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository or gateway is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{
		users:     users,
		gateway:   gateway,
		channelID: channelID,
		logger:    logger,
	}, nil
}

// SendToUser looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendToUser(
	ctx context.Context,
	userID string,
	n models.PushNotification,
) (string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return "", fmt.Errorf("SendToUser: %s: %w", userID, ErrUserNotFound)
		}
		return "", fmt.Errorf("SendToUser: could not read user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return "", fmt.Errorf("SendToUser: %s: %w", userID, ErrNoPushToken)
	}

	msg := s.buildMessage(u.FCMToken, n)
	response, err := s.gateway.Send(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("SendToUser: failed to send FCM message: %w", err)
	}

	s.logger.Debug("SendToUser: message sent",
		zap.String("recipientId", userID),
		zap.String("type", string(n.Type)),
		zap.String("messageId", response),
	)
	return response, nil
}

// DisplayName is best effort; lookup failures only cost the name in the text.
func (s *DefaultNotificationService) DisplayName(ctx context.Context, userID string) string {
	if userID == "" {
		return ""
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Debug("DisplayName: lookup failed", zap.String("userId", userID), zap.Error(err))
		return ""
	}
	return u.Name
}

func (s *DefaultNotificationService) buildMessage(token string, n models.PushNotification) *messaging.Message {
	data := make(map[string]string, len(n.Data)+1)
	for k, v := range n.Data {
		data[k] = v
	}
	if _, ok := data["type"]; !ok {
		data["type"] = string(n.Type)
	}

	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: s.channelID,
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}
}
