package prefstore

import (
	"context"
	"reflect"
	"testing"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/shindora/nesubtv/internal/domain/model"
)

func setupMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestPostgresStore_GetSet(t *testing.T) {
	tests := []struct {
		name   string
		mockFn func(mock pgxmock.PgxPoolIface)
		want   []string
	}{
		{
			name: "existing set",
			mockFn: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT value FROM viewer_preferences").
					WithArgs("p1", model.KeyLikedVideos).
					WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`["v1","v2"]`))
			},
			want: []string{"v1", "v2"},
		},
		{
			name: "missing row reads as empty",
			mockFn: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT value FROM viewer_preferences").
					WithArgs("p1", model.KeyLikedVideos).
					WillReturnRows(pgxmock.NewRows([]string{"value"}))
			},
			want: []string{},
		},
		{
			name: "corrupt value reads as empty",
			mockFn: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT value FROM viewer_preferences").
					WithArgs("p1", model.KeyLikedVideos).
					WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`{broken`))
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockPool(t)
			tt.mockFn(mock)

			store := NewPostgresStore(mock)
			got, err := store.GetSet(context.Background(), "p1", model.KeyLikedVideos)
			if err != nil {
				t.Fatalf("GetSet() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GetSet() = %v, want %v", got, tt.want)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestPostgresStore_SetSet(t *testing.T) {
	mock := setupMockPool(t)
	mock.ExpectExec("INSERT INTO viewer_preferences").
		WithArgs("p1", model.KeyWatchLater, `["v1"]`, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPostgresStore(mock)
	if err := store.SetSet(context.Background(), "p1", model.KeyWatchLater, []string{"v1"}); err != nil {
		t.Fatalf("SetSet() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresStore_Scalars(t *testing.T) {
	mock := setupMockPool(t)
	mock.ExpectQuery("SELECT value FROM viewer_preferences").
		WithArgs("p1", model.KeyTheme).
		WillReturnRows(pgxmock.NewRows([]string{"value"}))
	mock.ExpectExec("INSERT INTO viewer_preferences").
		WithArgs("p1", model.KeyTheme, "dark", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT value FROM viewer_preferences").
		WithArgs("p1", model.KeyTheme).
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("dark"))
	mock.ExpectExec("DELETE FROM viewer_preferences").
		WithArgs("p1", model.KeyTheme).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	store := NewPostgresStore(mock)
	ctx := context.Background()

	_, present, err := store.GetScalar(ctx, "p1", model.KeyTheme)
	if err != nil {
		t.Fatalf("GetScalar() error = %v", err)
	}
	if present {
		t.Error("absent scalar reported present")
	}

	if err := store.SetScalar(ctx, "p1", model.KeyTheme, "dark"); err != nil {
		t.Fatalf("SetScalar() error = %v", err)
	}

	value, present, err := store.GetScalar(ctx, "p1", model.KeyTheme)
	if err != nil {
		t.Fatalf("GetScalar() error = %v", err)
	}
	if !present || value != "dark" {
		t.Errorf("GetScalar() = (%q, %v), want (dark, true)", value, present)
	}

	if err := store.DeleteScalar(ctx, "p1", model.KeyTheme); err != nil {
		t.Fatalf("DeleteScalar() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
