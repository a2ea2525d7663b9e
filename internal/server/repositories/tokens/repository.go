// Package tokens declares the repository contract for the per-user list of
// active bearer tokens.
package tokens

import "context"

// Repository stores the tokens a user currently holds. A token is honoured
// only while it is present in its owner's list.
type Repository interface {
	// Add appends token to userID's list.
	Add(ctx context.Context, userID string, token string) error

	// Exists reports whether token is currently in userID's list.
	Exists(ctx context.Context, userID string, token string) (bool, error)

	// Remove drops a single token. Removing an absent token is not an error.
	Remove(ctx context.Context, userID string, token string) error

	// RemoveAll empties userID's list and returns how many tokens were dropped.
	RemoveAll(ctx context.Context, userID string) (int64, error)

	// List returns userID's tokens in the order they were issued.
	List(ctx context.Context, userID string) ([]string, error)
}
