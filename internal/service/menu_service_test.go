package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"restaurant-site/internal/fallback"
	"restaurant-site/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuBody = `{
	"Starters": [{"id": 1, "name": "Soup", "description": "Daily soup", "price": 6.5}],
	"Main Courses": [{"id": 2, "name": "Risotto", "description": "Mushroom", "price": 18}]
}`

func TestMenuService_List(t *testing.T) {
	b := newFakeBackend(t)
	b.handle(http.MethodGet, "/api/menu/items", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(menuBody))
	})
	svc := NewMenuService(b.client(t, time.Second), fallback.Default(), zerolog.Nop())

	menu, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Starters", "Main Courses"}, menu.CategoryNames())
	assert.Equal(t, model.CategoryMainCourses, menu[1].Items[0].Category)
}

func TestMenuService_Load(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		source   model.Source
		expected model.Menu
	}{
		{
			name: "backend menu",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(menuBody))
			},
			source: model.SourceBackend,
		},
		{
			name: "empty backend menu",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
			source:   model.SourceFallback,
			expected: fallback.Menu(),
		},
		{
			name: "backend error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			source:   model.SourceFallback,
			expected: fallback.Menu(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend(t)
			b.handle(http.MethodGet, "/api/menu/items", tt.handler)
			svc := NewMenuService(b.client(t, time.Second), fallback.Default(), zerolog.Nop())

			got := svc.Load(context.Background())

			assert.Equal(t, tt.source, got.Source)
			if tt.expected != nil {
				assert.Equal(t, tt.expected, got.Data)
				assert.NotEmpty(t, got.Reason)
				assert.True(t, got.Degraded())
			} else {
				assert.Equal(t, 2, got.Data.ItemCount())
				assert.False(t, got.Degraded())
			}
		})
	}
}

func TestMenuService_LoadUnreachableBackend(t *testing.T) {
	b := newFakeBackend(t)
	api := b.client(t, time.Second)
	b.server.Close()
	svc := NewMenuService(api, fallback.Default(), zerolog.Nop())

	got := svc.Load(context.Background())

	assert.True(t, got.Degraded())
	assert.Equal(t, model.MsgNetwork, got.Reason)
	assert.Equal(t, fallback.Menu(), got.Data)
}

func TestMenuService_Create(t *testing.T) {
	b := newFakeBackend(t)
	b.json(http.MethodPost, "/api/menu/items", http.StatusCreated, map[string]any{"message": "Menu item created", "id": 12})
	svc := NewMenuService(b.client(t, time.Second), fallback.Default(), zerolog.Nop())

	resp, err := svc.Create(context.Background(), model.MenuItem{
		Name:     "Panna Cotta",
		Price:    6.5,
		Category: model.CategoryDesserts,
	})

	require.NoError(t, err)
	assert.Equal(t, 12, resp.ID)
}

func TestMenuService_CreateValidation(t *testing.T) {
	b := newFakeBackend(t)
	svc := NewMenuService(b.client(t, time.Second), fallback.Default(), zerolog.Nop())

	_, err := svc.Create(context.Background(), model.MenuItem{Name: "", Price: -1, Category: "Snacks"})

	var e *model.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, model.KindValidation, e.Kind)
	assert.Len(t, e.Fields, 3)
	assert.Empty(t, b.calls())
}

func TestMenuService_UpdateAndDelete(t *testing.T) {
	b := newFakeBackend(t)
	b.json(http.MethodPut, "/api/menu/items/4", http.StatusOK, map[string]string{"message": "Menu item updated"})
	b.json(http.MethodDelete, "/api/menu/items/4", http.StatusOK, map[string]string{"message": "Menu item deleted"})
	svc := NewMenuService(b.client(t, time.Second), fallback.Default(), zerolog.Nop())

	resp, err := svc.Update(context.Background(), 4, model.MenuItem{Name: "Espresso", Price: 3, Category: model.CategoryBeverages})
	require.NoError(t, err)
	assert.Equal(t, "Menu item updated", resp.Message)

	resp, err = svc.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Menu item deleted", resp.Message)

	calls := b.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPut, calls[0].Method)
	assert.Equal(t, http.MethodDelete, calls[1].Method)
}
