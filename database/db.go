package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// InitFirestore opens the Firestore client of the Firebase app and checks it can read.
func InitFirestore(ctx context.Context, app *firebase.App, probeCollection string, logger *zap.Logger) (*firestore.Client, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open Firestore client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := Ping(pingCtx, client, probeCollection); err != nil {
		_ = client.Close()
		return nil, err
	}
	logger.Info("Connected to Firestore successfully", zap.String("probeCollection", probeCollection))
	return client, nil
}

// Ping reads at most one document of collection.
func Ping(ctx context.Context, client *firestore.Client, collection string) error {
	it := client.Collection(collection).Limit(1).Documents(ctx)
	defer it.Stop()
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("failed to ping Firestore: %w", err)
	}
	return nil
}
