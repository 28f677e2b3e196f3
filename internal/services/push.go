package services

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"github.com/marta/unhabits-api/internal/database"
	"github.com/marta/unhabits-api/internal/models"
	"github.com/marta/unhabits-api/pkg/logger"
	"google.golang.org/api/option"
)

// PushService delivers reminders via Firebase Cloud Messaging. It satisfies
// notify.Notifier so the scheduler can be tested against a fake.
type PushService struct {
	client *messaging.Client
}

// Global push service instance
var Push *PushService

// InitPush initializes the Firebase push notification service.
// Returns nil gracefully if no service account is configured (dev mode).
func InitPush(serviceAccountPath string) error {
	if serviceAccountPath == "" {
		logger.Log.Info("FCM: no service account configured, push notifications disabled")
		Push = &PushService{client: nil}
		return nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		logger.Log.WithError(err).Error("FCM: failed to initialize Firebase app")
		Push = &PushService{client: nil}
		return nil
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("FCM: failed to get messaging client")
		Push = &PushService{client: nil}
		return nil
	}

	Push = &PushService{client: client}
	logger.Log.Info("FCM: push notifications enabled")
	return nil
}

// Available reports whether the messaging client is configured.
func (p *PushService) Available() bool {
	return p != nil && p.client != nil
}

// CanDeliver reports whether the user has a registered device token.
func (p *PushService) CanDeliver(ctx context.Context, userID uuid.UUID) bool {
	if !p.Available() {
		return false
	}
	var user models.User
	if err := database.DB.WithContext(ctx).Select("fcm_token").First(&user, userID).Error; err != nil {
		return false
	}
	return user.FCMToken != ""
}

// Send pushes a notification to the user's registered device.
// No-op if push is not configured or the user has no FCM token.
func (p *PushService) Send(ctx context.Context, userID uuid.UUID, title, body string, data map[string]string) error {
	if !p.Available() {
		return nil
	}

	var user models.User
	if err := database.DB.WithContext(ctx).Select("fcm_token").First(&user, userID).Error; err != nil {
		return err
	}
	if user.FCMToken == "" {
		return nil
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	if data != nil {
		msg.Data = data
	}

	if _, err := p.client.Send(ctx, msg); err != nil {
		logger.Log.WithError(err).WithField("user", userID).Warn("FCM: failed to send")
		return err
	}
	return nil
}
