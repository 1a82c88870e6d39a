package devconnect_test

import (
	"context"
	"sync"

	"github.com/goliatone/go-devconnect"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// memUsers is an in memory devconnect.Users
type memUsers struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*devconnect.User
	failGet error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]*devconnect.User{}}
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*devconnect.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, devconnect.NewRecordNotFound("user not found")
}

func (m *memUsers) GetByIdentifier(_ context.Context, identifier string) (*devconnect.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	email := devconnect.NormalizeEmail(identifier)
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, devconnect.NewRecordNotFound("user not found")
}

func (m *memUsers) Create(_ context.Context, record *devconnect.User) (*devconnect.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == record.Email {
			return nil, devconnect.NewDuplicateRecord(nil, "duplicate record")
		}
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	cp := *record
	m.byID[record.ID] = &cp
	return record, nil
}

func (m *memUsers) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return devconnect.NewRecordNotFound("user not found")
	}
	delete(m.byID, id)
	return nil
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// MockIdentityProvider implements devconnect.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (devconnect.Identity, error) {
	args := m.Called(ctx, identifier, password)
	identity, _ := args.Get(0).(devconnect.Identity)
	return identity, args.Error(1)
}

// MockLogger implements devconnect.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, args ...any) { m.Called(msg, args) }
func (m *MockLogger) Info(msg string, args ...any)  { m.Called(msg, args) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.Called(msg, args) }
func (m *MockLogger) Error(msg string, args ...any) { m.Called(msg, args) }

// testConfig implements devconnect.Config
type testConfig struct {
	key      string
	hours    int
	lookup   string
	scheme   string
	issuer   string
	audience []string
}

func (c testConfig) GetSigningKey() string      { return c.key }
func (c testConfig) GetContextKey() string      { return "" }
func (c testConfig) GetTokenExpiration() int    { return c.hours }
func (c testConfig) GetTokenLookup() string     { return c.lookup }
func (c testConfig) GetAuthScheme() string      { return c.scheme }
func (c testConfig) GetIssuer() string          { return c.issuer }
func (c testConfig) GetAudience() []string      { return c.audience }

func defaultTestConfig() testConfig {
	return testConfig{
		key:    "unit-test-signing-key",
		hours:  24,
		lookup: "header:x-auth-token",
	}
}

// cheapHasher keeps bcrypt fast in tests
var cheapHasher = devconnect.NewBcryptHasher(4)
