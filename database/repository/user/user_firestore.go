package userRepo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nhap/models"
)

// FirestoreUserRepo implements UserRepository on the Users collection.
type FirestoreUserRepo struct {
	coll    *firestore.CollectionRef
	timeout time.Duration
}

// NewFirestoreUserRepo creates a UserRepository reading from collection.
func NewFirestoreUserRepo(client *firestore.Client, collection string) UserRepository {
	return &FirestoreUserRepo{
		coll:    client.Collection(collection),
		timeout: 5 * time.Second,
	}
}

// GetByID reads Users/{id}. A missing document yields ErrUserNotFound.
func (r *FirestoreUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, fmt.Errorf("failed to fetch user: empty id: %w", ErrUserNotFound)
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	snap, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with id %s: %w", id, ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	if !snap.Exists() {
		return nil, fmt.Errorf("user with id %s: %w", id, ErrUserNotFound)
	}

	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	user.ID = snap.Ref.ID
	return &user, nil
}
