package service

import (
	"context"
	"fmt"
	"net/http"

	"restaurant-site/internal/apiclient"
	"restaurant-site/internal/model"
)

// Helpers for the plain CRUD endpoints. Errors come back from the API
// client untouched so callers can switch on their kind.

func getJSON[T any](ctx context.Context, api API, path string) (*T, error) {
	var out T
	if err := api.Do(ctx, apiclient.Request{Path: path}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func listJSON[T any](ctx context.Context, api API, path string) ([]T, error) {
	var out []T
	if err := api.Do(ctx, apiclient.Request{Path: path}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func send(ctx context.Context, api API, method, path string, body any) (*model.MessageResponse, error) {
	var out model.MessageResponse
	if err := api.Do(ctx, apiclient.Request{Method: method, Path: path, Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func create(ctx context.Context, api API, path string, body any) (*model.MessageResponse, error) {
	return send(ctx, api, http.MethodPost, path, body)
}

func update(ctx context.Context, api API, path string, id int, body any) (*model.MessageResponse, error) {
	return send(ctx, api, http.MethodPut, itemPath(path, id), body)
}

func remove(ctx context.Context, api API, path string, id int) (*model.MessageResponse, error) {
	return send(ctx, api, http.MethodDelete, itemPath(path, id), nil)
}

func itemPath(path string, id int) string {
	return fmt.Sprintf("%s/%d", path, id)
}

func csvRequest(path string) apiclient.Request {
	return apiclient.Request{
		Path:   path,
		Header: http.Header{"Accept": []string{"text/csv"}},
	}
}
