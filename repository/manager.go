package repository

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-devconnect/migrations"
	"github.com/goliatone/go-devconnect/posts"
	"github.com/goliatone/go-devconnect/profile"
	"github.com/goliatone/go-errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Options selects and configures the storage backend
type Options struct {
	Driver string
	DSN    string
	// Name is the mongo database name
	Name  string
	Debug bool
}

// Manager exposes all repositories
type Manager interface {
	Validate() error
	MustValidate()
	Users() devconnect.Users
	Profiles() profile.Repository
	Posts() posts.Repository
	Close(ctx context.Context) error
}

type mngr struct {
	users    devconnect.Users
	profiles profile.Repository
	posts    posts.Repository
	closer   func(ctx context.Context) error
}

// Open connects to the configured backend, prepares its schema and returns
// the repository manager.
func Open(ctx context.Context, opts Options, logger devconnect.Logger) (Manager, error) {
	if logger == nil {
		logger = devconnect.DefaultLogger()
	}

	switch opts.Driver {
	case DriverSQLite, "":
		sqldb, err := sql.Open(sqliteshim.ShimName, opts.DSN)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryExternal, "open sqlite")
		}
		if isMemoryDSN(opts.DSN) {
			sqldb.SetMaxOpenConns(1)
		}
		logger.Info("storage opened", "driver", DriverSQLite)
		return openSQL(ctx, sqldb, DriverSQLite, opts.Debug)

	case DriverPostgres:
		sqldb, err := sql.Open("pgx", opts.DSN)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryExternal, "open postgres")
		}
		logger.Info("storage opened", "driver", DriverPostgres)
		return openSQL(ctx, sqldb, DriverPostgres, opts.Debug)

	case DriverMongo:
		client, err := mongo.Connect(options.Client().ApplyURI(opts.DSN))
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryExternal, "connect mongo")
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(ctx)
			return nil, errors.Wrap(err, errors.CategoryExternal, "ping mongo")
		}

		db := client.Database(opts.Name)
		if err := EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		logger.Info("storage opened", "driver", DriverMongo, "database", opts.Name)
		return NewMongoManager(client, db), nil
	}

	return nil, errors.New("unknown database driver: "+opts.Driver, errors.CategoryBadInput).
		WithTextCode("UNKNOWN_DRIVER")
}

func openSQL(ctx context.Context, sqldb *sql.DB, driver string, debug bool) (Manager, error) {
	if err := Migrate(ctx, sqldb, driver); err != nil {
		sqldb.Close()
		return nil, err
	}

	db := NewBunDB(sqldb, driver)
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return NewSQLManager(db), nil
}

// NewBunDB wraps sqldb with the bun dialect matching driver
func NewBunDB(sqldb *sql.DB, driver string) *bun.DB {
	if driver == DriverPostgres {
		return bun.NewDB(sqldb, pgdialect.New())
	}
	return bun.NewDB(sqldb, sqlitedialect.New())
}

// Migrate applies the embedded migrations
func Migrate(ctx context.Context, sqldb *sql.DB, driver string) error {
	dialect := "sqlite3"
	if driver == DriverPostgres {
		dialect = "pgx"
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "set migration dialect")
	}

	if err := goose.UpContext(ctx, sqldb, "."); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "run migrations")
	}
	return nil
}

// NewSQLManager returns a manager backed by bun repositories
func NewSQLManager(db *bun.DB) Manager {
	return &mngr{
		users:    NewUserRepository(db),
		profiles: NewProfileRepository(db),
		posts:    NewPostRepository(db),
		closer: func(context.Context) error {
			return db.Close()
		},
	}
}

// NewMongoManager returns a manager backed by mongo collections
func NewMongoManager(client *mongo.Client, db *mongo.Database) Manager {
	return &mngr{
		users:    NewMongoUserRepository(db),
		profiles: NewMongoProfileRepository(db),
		posts:    NewMongoPostRepository(db),
		closer:   client.Disconnect,
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized", errors.CategoryInternal)
	}

	if m.profiles == nil {
		return errors.New("repository profiles should be initialized", errors.CategoryInternal)
	}

	if m.posts == nil {
		return errors.New("repository posts should be initialized", errors.CategoryInternal)
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) Users() devconnect.Users {
	return m.users
}

func (m mngr) Profiles() profile.Repository {
	return m.profiles
}

func (m mngr) Posts() posts.Repository {
	return m.posts
}

func (m mngr) Close(ctx context.Context) error {
	if m.closer == nil {
		return nil
	}
	return m.closer(ctx)
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
