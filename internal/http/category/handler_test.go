package category_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/budgetsync/internal/http/category"
)

type listerFunc func(ctx context.Context) ([]string, error)

func (f listerFunc) Categories(ctx context.Context) ([]string, error) { return f(ctx) }

func TestHandler_List(t *testing.T) {
	type testCase struct {
		name       string
		lister     listerFunc
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "Names",
			lister: func(context.Context) ([]string, error) {
				return []string{"Dining", "Groceries"}, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"categories":["Dining","Groceries"]}`,
		},
		{
			name:       "Empty",
			lister:     func(context.Context) ([]string, error) { return nil, nil },
			wantStatus: http.StatusOK,
			wantBody:   `{"categories":[]}`,
		},
		{
			name:       "StoreDown",
			lister:     func(context.Context) ([]string, error) { return nil, errors.New("connection refused") },
			wantStatus: http.StatusInternalServerError,
			wantBody:   "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := chi.NewRouter()
			category.NewHandler(tt.lister).Routes(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
