package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		context  string
		wantCode string
	}{
		{
			name:     "Record not found maps to context code",
			err:      gorm.ErrRecordNotFound,
			context:  "product",
			wantCode: ProductNotFound,
		},
		{
			name:     "Order lookup miss",
			err:      gorm.ErrRecordNotFound,
			context:  "order",
			wantCode: OrderNotFound,
		},
		{
			name:     "Unknown context falls back to internal",
			err:      gorm.ErrRecordNotFound,
			context:  "warehouse",
			wantCode: InternalServerError,
		},
		{
			name:     "Postgres duplicate key",
			err:      errors.New(`duplicate key value violates unique constraint "idx_orders_order_code"`),
			context:  "order",
			wantCode: ValidationInvalidInput,
		},
		{
			name:     "SQLite unique constraint",
			err:      errors.New("UNIQUE constraint failed: orders.order_code"),
			context:  "order",
			wantCode: ValidationInvalidInput,
		},
		{
			name:     "Foreign key violation",
			err:      errors.New(`insert or update on table "order_items" violates foreign key constraint`),
			context:  "order",
			wantCode: ValidationInvalidID,
		},
		{
			name:     "Not-null violation",
			err:      errors.New(`null value in column "name" violates not-null constraint`),
			context:  "product",
			wantCode: ValidationRequired,
		},
		{
			name:     "Connection refused",
			err:      errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			context:  "product",
			wantCode: InternalExternalAPI,
		},
		{
			name:     "Nil error",
			err:      nil,
			context:  "product",
			wantCode: InternalServerError,
		},
		{
			name:     "Unrecognized error",
			err:      errors.New("something unexpected"),
			context:  "product",
			wantCode: InternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.context)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.NotEmpty(t, info.Message)
		})
	}
}
