package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	t.Run("blank optional fields become nil", func(t *testing.T) {
		req := CreateEmployeeRequest{Name: "Alice", Email: strPtr("  "), StoreID: strPtr("")}
		require.NoError(t, req.Validate())
		assert.Nil(t, req.Email)
		assert.Nil(t, req.StoreID)
	})

	t.Run("invalid email and store id", func(t *testing.T) {
		req := CreateEmployeeRequest{Name: "Alice", Email: strPtr("alice@"), StoreID: strPtr("store-1")}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "store_id")
	})

	t.Run("name required", func(t *testing.T) {
		req := CreateEmployeeRequest{Name: " "}
		assert.Error(t, req.Validate())
	})
}

func TestUpdateEmployeeRequest_Validate(t *testing.T) {
	req := UpdateEmployeeRequest{
		ID:    "0190a3c2-5d4e-7f00-8a1b-2c3d4e5f6a7b",
		Name:  "Bob",
		Email: strPtr(" bob@example.com "),
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, "bob@example.com", *req.Email)

	req.ID = "42"
	assert.Error(t, req.Validate())
}

func TestEmployee_HasEmail(t *testing.T) {
	assert.False(t, Employee{}.HasEmail())
	assert.False(t, Employee{Email: strPtr("")}.HasEmail())
	assert.True(t, Employee{Email: strPtr("a@b.cd")}.HasEmail())
}
