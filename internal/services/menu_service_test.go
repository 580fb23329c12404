package services

import (
	"testing"

	"food_ordering/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItemValidation(t *testing.T) {
	tests := []struct {
		name    string
		item    models.MenuItem
		wantErr error
	}{
		{"valid tracked stock", models.MenuItem{Name: "Naan", Price: 3.50, Stock: 10}, nil},
		{"valid unlimited stock", models.MenuItem{Name: "Rice", Price: 3.00, Stock: models.UnlimitedStock}, nil},
		{"valid zero stock", models.MenuItem{Name: "Special", Price: 5.00, Stock: 0}, nil},
		{"negative price", models.MenuItem{Name: "Naan", Price: -1, Stock: 10}, ErrInvalidPrice},
		{"stock below sentinel", models.MenuItem{Name: "Naan", Price: 3.50, Stock: -2}, ErrInvalidStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMenuService(newFakeMenuRepo())

			err := svc.CreateItem(&tt.item)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCustomerMenuHidesDisabledItems(t *testing.T) {
	repo := newFakeMenuRepo(
		models.MenuItem{ID: 1, Name: "Naan", Category: "Breads", Enabled: true},
		models.MenuItem{ID: 2, Name: "Retired Dish", Category: "Curries", Enabled: false},
		models.MenuItem{ID: 3, Name: "Butter Chicken", Category: "Curries", Enabled: true},
	)
	svc := NewMenuService(repo)

	visible, err := svc.GetCustomerMenu("")
	require.NoError(t, err)
	assert.Len(t, visible, 2)
	for _, item := range visible {
		assert.True(t, item.Enabled)
	}

	curries, err := svc.GetCustomerMenu("Curries")
	require.NoError(t, err)
	require.Len(t, curries, 1)
	assert.Equal(t, "Butter Chicken", curries[0].Name)

	full, err := svc.GetFullMenu("")
	require.NoError(t, err)
	assert.Len(t, full, 3, "admin view includes disabled items")
}

func TestSetItemImage(t *testing.T) {
	repo := newFakeMenuRepo(models.MenuItem{ID: 1, Name: "Naan", Enabled: true})
	svc := NewMenuService(repo)

	require.NoError(t, svc.SetItemImage(1, "https://img.example/naan.jpg"))

	item, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/naan.jpg", item.ImageURL)

	assert.Error(t, svc.SetItemImage(99, "https://img.example/x.jpg"))
}
