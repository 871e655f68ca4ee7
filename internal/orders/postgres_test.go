package orders

import (
	"context"
	"testing"
	"time"

	"github.com/fitquality/storefront/internal/domain"
	ps "github.com/fitquality/storefront/internal/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*PostgresRepository, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cred := &ps.Credentials{
		Host:     host,
		Port:     port.Int(),
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
	}

	db, err := ps.Connect(cred)
	require.NoError(t, err)

	err = ps.RunMigrations(db, "../../migrations")
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return NewPostgresRepository(db), cleanup
}

func newTestOrder(customerID int64) *domain.Order {
	return &domain.Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		CustomerName:    "Ana Soto",
		CustomerEmail:   "ana@example.com",
		CustomerPhone:   "987654321",
		ShippingAddress: "Av. Providencia 123",
		TotalAmount:     15000,
		Currency:        "CLP",
		Items: []domain.OrderItem{
			{ProductID: 1, ProductName: "Dumbbell", UnitPrice: 2500, Quantity: 2},
			{ProductID: 2, ProductName: "Rope", UnitPrice: 10000, Quantity: 1},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestCreateAndGetOrder(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	order := newTestOrder(7)
	require.NoError(t, repo.CreateOrder(ctx, order))

	fetched, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.CustomerID, fetched.CustomerID)
	assert.Equal(t, order.TotalAmount, fetched.TotalAmount)
	assert.False(t, fetched.Delivered)
	assert.Empty(t, fetched.ProofImageURI)
	require.Len(t, fetched.Items, 2)
	assert.Equal(t, "Dumbbell", fetched.Items[0].ProductName)
	assert.Equal(t, 2500.0, fetched.Items[0].UnitPrice)
}

func TestGetOrderByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetOrderByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListByCustomer(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	mine := newTestOrder(7)
	other := newTestOrder(8)
	require.NoError(t, repo.CreateOrder(ctx, mine))
	require.NoError(t, repo.CreateOrder(ctx, other))

	history, err := repo.ListByCustomer(ctx, 7)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, mine.ID, history[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSetDeliveryProof(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	order := newTestOrder(7)
	require.NoError(t, repo.CreateOrder(ctx, order))

	require.NoError(t, repo.SetDeliveryProof(ctx, order.ID, "content://proofs/123.jpg"))

	fetched, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Delivered)
	assert.Equal(t, "content://proofs/123.jpg", fetched.ProofImageURI)

	err = repo.SetDeliveryProof(ctx, uuid.New(), "content://proofs/456.jpg")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPlacer_BuildsOrderFromSnapshot(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	placer := NewPlacer(repo)
	purchaser := domain.Identity{UserID: 7, Name: "Ana Soto", Email: "ana@example.com", Phone: "987654321"}
	items := []domain.OrderItem{
		{ProductID: 1, ProductName: "Dumbbell", UnitPrice: 2500, Quantity: 2},
	}

	order, err := placer.PlaceOrder(ctx, purchaser, "Av. Providencia 123", items)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, order.TotalAmount)
	assert.Equal(t, "CLP", order.Currency)

	fetched, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.TotalAmount, fetched.TotalAmount)
	assert.Equal(t, "Ana Soto", fetched.CustomerName)
}
