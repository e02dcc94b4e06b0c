package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCustomerProfileRepository creates a repository with a mocked SQL connection
func newMockCustomerProfileRepository(t *testing.T) (*GormCustomerProfileRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCustomerProfileRepository(gormDB), mock, mockDB
}

func TestGormCustomerProfileRepository_FindByID(t *testing.T) {
	t.Run("finds existing customer", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerProfileRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "code", "full_name", "status"}).
			AddRow(customerID, tenantID, "CUST-001", "Ada Lovelace", "active")

		mock.ExpectQuery(`SELECT \* FROM "customer_profiles" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnRows(rows)

		customer, err := repo.FindByID(context.Background(), customerID)

		assert.NoError(t, err)
		assert.NotNil(t, customer)
		assert.Equal(t, customerID, customer.ID)
		assert.Equal(t, "CUST-001", customer.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerProfileRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "customer_profiles" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		customer, err := repo.FindByID(context.Background(), customerID)

		assert.Nil(t, customer)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerProfileRepository_ExistsByCode(t *testing.T) {
	t.Run("uppercases the code before matching", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerProfileRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "customer_profiles" WHERE tenant_id = \$1 AND code = \$2`).
			WithArgs(tenantID, "CUST-001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), tenantID, "cust-001")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
