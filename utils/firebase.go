// utils/firebase.go
package utils

import (
	"context"
	"fmt"
	"os"

	"nhap/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseClients bundles the Firebase app and the messaging client built from it.
// Callers own the clients and pass them on explicitly.
type FirebaseClients struct {
	App       *firebase.App
	Messaging *messaging.Client
}

// NewFirebaseClients initializes the Firebase App and Messaging client.
// Without a credentials file Application Default Credentials are used.
func NewFirebaseClients(ctx context.Context, cfg config.Config) (*FirebaseClients, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		if _, err := os.Stat(cfg.FirebaseCredentialsFile); err == nil {
			opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
		}
	}

	var fbConfig *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	return &FirebaseClients{App: app, Messaging: client}, nil
}
