package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Txn runs a function as a single transactional unit. Multi-entity cascades
// (trip dispatch/completion, maintenance create/delete) run through this so
// either every write lands or none do.
type Txn interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// SessionTxn implements Txn on a MongoDB client session. Collection calls
// made with the callback's context participate in the transaction.
type SessionTxn struct {
	Client *mongo.Client
}

func (t *SessionTxn) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// PassthroughTxn runs the callback without a transaction. Used in tests and
// against standalone Mongo deployments that do not support sessions.
type PassthroughTxn struct{}

func (PassthroughTxn) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
