package service

import (
	"context"

	"restaurant-site/internal/apiclient"
	"restaurant-site/internal/fallback"
	"restaurant-site/internal/model"
	"restaurant-site/internal/validation"

	"github.com/rs/zerolog"
)

const menuItemsPath = "/menu/items"

// menuService implements MenuService.
type menuService struct {
	api      API
	fallback model.Menu
	logger   zerolog.Logger
}

// NewMenuService creates a new menu service. content supplies the page shown
// when the backend cannot.
func NewMenuService(api API, content fallback.Content, logger zerolog.Logger) MenuService {
	return &menuService{
		api:      api,
		fallback: content.Menu,
		logger:   logger.With().Str("service", "menu").Logger(),
	}
}

// List retrieves the menu grouped by category.
func (s *menuService) List(ctx context.Context) (model.Menu, error) {
	var menu model.Menu
	if err := s.api.Do(ctx, apiclient.Request{Path: menuItemsPath}, &menu); err != nil {
		s.logger.Warn().Err(err).Msg("failed to get menu")
		return nil, err
	}

	s.logger.Debug().
		Int("categories", len(menu)).
		Int("items", menu.ItemCount()).
		Msg("retrieved menu")

	return menu, nil
}

// Get retrieves a single menu item.
func (s *menuService) Get(ctx context.Context, id int) (*model.MenuItem, error) {
	return getJSON[model.MenuItem](ctx, s.api, itemPath(menuItemsPath, id))
}

// Create adds a menu item after checking the form locally.
func (s *menuService) Create(ctx context.Context, item model.MenuItem) (*model.MessageResponse, error) {
	if err := validation.MenuItem(item).Err(); err != nil {
		return nil, err
	}

	resp, err := create(ctx, s.api, menuItemsPath, item)
	if err != nil {
		s.logger.Warn().Err(err).Str("name", item.Name).Msg("failed to create menu item")
		return nil, err
	}

	s.logger.Info().Int("item_id", resp.ID).Str("name", item.Name).Msg("menu item created")

	return resp, nil
}

// Update replaces a menu item after checking the form locally.
func (s *menuService) Update(ctx context.Context, id int, item model.MenuItem) (*model.MessageResponse, error) {
	if err := validation.MenuItem(item).Err(); err != nil {
		return nil, err
	}

	resp, err := update(ctx, s.api, menuItemsPath, id, item)
	if err != nil {
		s.logger.Warn().Err(err).Int("item_id", id).Msg("failed to update menu item")
		return nil, err
	}
	return resp, nil
}

// Delete removes a menu item.
func (s *menuService) Delete(ctx context.Context, id int) (*model.MessageResponse, error) {
	resp, err := remove(ctx, s.api, menuItemsPath, id)
	if err != nil {
		s.logger.Warn().Err(err).Int("item_id", id).Msg("failed to delete menu item")
		return nil, err
	}
	return resp, nil
}

// Load returns the backend menu, falling back to the static menu.
func (s *menuService) Load(ctx context.Context) model.Sourced[model.Menu] {
	menu, err := s.List(ctx)
	if err != nil {
		s.logger.Info().Err(err).Msg("using static menu")
		return model.FromFallback(s.fallback.Clone(), err.Error())
	}
	if menu.ItemCount() == 0 {
		s.logger.Info().Msg("backend menu is empty, using static menu")
		return model.FromFallback(s.fallback.Clone(), "backend returned no menu items")
	}
	return model.FromBackend(menu)
}
