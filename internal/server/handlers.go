package server

import (
	"arpg-server/pkg/api"
	"encoding/json"
	"errors"
	"fmt"
)

// HandlerFunc - обработчик одного действия клиента.
type HandlerFunc func(c *Client, payload json.RawMessage) error

// TypedHandlerFunc - это "чистый" хендлер, который работает с готовой структурой T
type TypedHandlerFunc[T any] func(c *Client, payload T) error

// EmptyHandlerFunc - хендлер, которому НЕ нужны данные (INIT)
type EmptyHandlerFunc func(c *Client) error

var errNoPayload = errors.New("payload is required")

// WithPayload берет "чистый" хендлер и превращает его в стандартный HandlerFunc.
// Она берет на себя Unmarshal и Validate.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(c *Client, raw json.RawMessage) error {
		if len(raw) == 0 {
			return errNoPayload
		}

		var payload T
		// 1. Распаковка JSON
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("invalid payload format: %w", err)
		}

		// 2. Автоматическая валидация
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		}

		// 3. Вызов чистой логики
		return handler(c, payload)
	}
}

// WithEmptyPayload - обертка для команд без данных
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(c *Client, _ json.RawMessage) error {
		return handler(c)
	}
}

var actionHandlers = map[string]HandlerFunc{
	api.ActionInit:     WithEmptyPayload(handleInit),
	api.ActionViewport: WithPayload(handleViewport),
	api.ActionFindPath: WithPayload(handleFindPath),
}
