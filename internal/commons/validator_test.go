package commons

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetstore/internal/dto"
	apperrors "vetstore/internal/errors"
)

func fieldsOf(err error) []string {
	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		return nil
	}
	fields := make([]string, len(ve.Details))
	for i, d := range ve.Details {
		fields[i] = d.Field
	}
	return fields
}

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestValidateStruct_Valid(t *testing.T) {
	v := NewValidator()
	discount := decimal.NewFromInt(5)

	req := dto.CreateOrderRequest{
		Items: []dto.CreateOrderItem{
			{ProductID: 1, Quantity: 2, UnitPrice: price(100)},
			{ProductID: 2, Quantity: 1, UnitPrice: price(0)},
		},
		Discount: &discount,
	}

	assert.NoError(t, ValidateStruct(v, req))
}

func TestValidateStruct_EmptyItems(t *testing.T) {
	v := NewValidator()

	err := ValidateStruct(v, dto.CreateOrderRequest{})
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Details, 1)
	assert.Equal(t, "items", ve.Details[0].Field)
	assert.Equal(t, "items must not be empty", ve.Details[0].Message)
}

func TestValidateStruct_ItemRules(t *testing.T) {
	v := NewValidator()
	negativeTax := decimal.NewFromInt(-1)

	req := dto.CreateOrderRequest{
		Items: []dto.CreateOrderItem{
			{ProductID: 0, Quantity: 1, UnitPrice: price(1)},
			{ProductID: 2, Quantity: 0, UnitPrice: price(1)},
			{ProductID: 3, Quantity: 1, UnitPrice: price(-10)},
		},
		Tax: &negativeTax,
	}

	err := ValidateStruct(v, req)
	require.Error(t, err)

	fields := fieldsOf(err)
	assert.Contains(t, fields, "items[0].productId")
	assert.Contains(t, fields, "items[1].quantity")
	assert.Contains(t, fields, "items[2].unitPrice")
	assert.Contains(t, fields, "tax")
}

func TestValidateStruct_MissingUnitPrice(t *testing.T) {
	v := NewValidator()

	req := dto.CreateOrderRequest{
		Items: []dto.CreateOrderItem{{ProductID: 1, Quantity: 3}},
	}

	err := ValidateStruct(v, req)
	require.Error(t, err)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Details, 1)
	assert.Equal(t, "items[0].unitPrice", ve.Details[0].Field)
	assert.Equal(t, "unitPrice is required", ve.Details[0].Message)
}
