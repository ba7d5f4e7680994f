package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"allure-backend/models"
	"allure-backend/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/DATA-DOG/go-sqlmock.v1"
)

func newTestOrder() *models.Order {
	return &models.Order{
		CustomerID:   uuid.New(),
		DeliveryDate: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Status:       models.StatusReceived,
		TotalAmount:  decimal.NewFromInt(4500),
		AdvancePaid:  decimal.NewFromInt(1000),
		Items: []models.OrderItem{
			{GarmentType: models.GarmentBlouse, Quantity: 1, Price: decimal.NewFromInt(1500), Measurements: models.Measurements{}},
			{GarmentType: models.GarmentLehenga, Quantity: 1, Price: decimal.NewFromInt(3000), Measurements: models.Measurements{}},
		},
	}
}

func numberer(seq int64) string {
	return services.FormatOrderNumber("ALR", seq)
}

func TestOrderStoreCreate(t *testing.T) {
	sqlDB, db, mock := dbMock(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(nextOrderNumberSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(7))
	mock.ExpectExec(`INSERT INTO "orders"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "order_items"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "order_items"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	order := newTestOrder()
	err := NewOrderStore(db).Create(context.Background(), order, numberer)

	require.NoError(t, err)
	assert.Nil(t, mock.ExpectationsWereMet())
	assert.Equal(t, "ALR-0007", order.OrderNumber)
	assert.NotEqual(t, uuid.Nil, order.ID)
	for _, item := range order.Items {
		assert.Equal(t, order.ID, item.OrderID)
		assert.NotEqual(t, uuid.Nil, item.ID)
	}
}

func TestOrderStoreCreateRollsBackOnItemFailure(t *testing.T) {
	sqlDB, db, mock := dbMock(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(nextOrderNumberSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO "orders"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "order_items"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := NewOrderStore(db).Create(context.Background(), newTestOrder(), numberer)

	assert.Error(t, err)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestOrderStoreCreateSequenceFailure(t *testing.T) {
	sqlDB, db, mock := dbMock(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(nextOrderNumberSQL)).WillReturnError(errors.New("relation does not exist"))
	mock.ExpectRollback()

	order := newTestOrder()
	err := NewOrderStore(db).Create(context.Background(), order, numberer)

	assert.Error(t, err)
	assert.Empty(t, order.OrderNumber)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestOrderStoreCreateDuplicateNumber(t *testing.T) {
	sqlDB, db, mock := dbMock(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(nextOrderNumberSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(3))
	mock.ExpectExec(`INSERT INTO "orders"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_orders_order_number"})
	mock.ExpectRollback()

	err := NewOrderStore(db).Create(context.Background(), newTestOrder(), numberer)

	assert.True(t, errors.Is(err, services.ErrDuplicate))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestOrderStoreAddPayment(t *testing.T) {
	sqlDB, db, mock := dbMock(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET .+advance_paid \+`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewOrderStore(db).AddPayment(context.Background(), uuid.New(), decimal.NewFromInt(500))

	assert.NoError(t, err)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestOrderStoreAddPaymentOverpayment(t *testing.T) {
	sqlDB, db, mock := dbMock(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := NewOrderStore(db).AddPayment(context.Background(), uuid.New(), decimal.NewFromInt(99999))

	assert.Equal(t, services.ErrOverpayment, err)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestOrderStoreAddPaymentUnknownOrder(t *testing.T) {
	sqlDB, db, mock := dbMock(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := NewOrderStore(db).AddPayment(context.Background(), uuid.New(), decimal.NewFromInt(10))

	assert.Equal(t, services.ErrNotFound, err)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestOrderStoreUpdateStatusNotFound(t *testing.T) {
	sqlDB, db, mock := dbMock(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET "status"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := NewOrderStore(db).UpdateStatus(context.Background(), uuid.New(), models.StatusReady)

	assert.Equal(t, services.ErrNotFound, err)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestTranslateForeignKeyViolation(t *testing.T) {
	err := translate(&pgconn.PgError{Code: "23503", ConstraintName: "fk_customers_orders"})
	assert.True(t, errors.Is(err, services.ErrNotFound))
	assert.Nil(t, translate(nil))
}
