package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/spec-kit/credential-service/internal/config"
)

// UsersCollection is the single collection holding account documents.
const UsersCollection = "users"

// Mongo wraps access to the document store client.
type Mongo struct {
	Client   *mongo.Client
	database string
}

// NewMongo establishes a client connection when a URI is provided.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	if cfg.URI == "" {
		logger.Warn("MONGO_URI not provided; skipping database connection")
		return &Mongo{Client: nil, database: cfg.Database}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("connected to mongodb", zap.String("database", cfg.Database))
	return &Mongo{Client: client, database: cfg.Database}, nil
}

// Close releases client resources.
func (m *Mongo) Close(ctx context.Context) {
	if m != nil && m.Client != nil {
		_ = m.Client.Disconnect(ctx)
	}
}

// Database returns the configured database handle.
func (m *Mongo) Database() *mongo.Database {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Database(m.database)
}

// Users returns the account collection handle.
func (m *Mongo) Users() *mongo.Collection {
	db := m.Database()
	if db == nil {
		return nil
	}
	return db.Collection(UsersCollection)
}

// Ping verifies store connectivity.
func (m *Mongo) Ping(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return errors.New("mongo client not configured")
	}
	return m.Client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the unique email index. The index is the
// authoritative uniqueness guard: the service's pre-insert existence check
// and the insert are not atomic, so two concurrent registrations can both
// pass the check and only the index catches the second insert.
func EnsureIndexes(ctx context.Context, m *Mongo, logger *zap.Logger) error {
	users := m.Users()
	if users == nil {
		logger.Warn("no mongo connection available; skipping index creation")
		return nil
	}

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	}

	name, err := users.Indexes().CreateOne(ctx, model)
	if err != nil {
		return err
	}

	logger.Info("ensured indexes", zap.String("index", name))
	return nil
}
