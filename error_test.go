package pathcount_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/heimdalr/pathcount"
)

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", pathcount.EmptyIDError("source"))
	if !pathcount.IsEmptyIDError(err) {
		t.Errorf("got 'false', want wrapped empty id error to match")
	}
	if pathcount.IsCanceledError(err) {
		t.Errorf("got 'true', want empty id error not to match canceled")
	}
	if errors.Is(err, errors.New("source id is empty")) {
		t.Errorf("got 'true', want plain error not to match")
	}
}

func TestError_Unwrap(t *testing.T) {
	err := pathcount.CanceledError(context.Canceled)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got 'false', want canceled error to unwrap to context.Canceled")
	}
	want := "search canceled: context canceled"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err  pathcount.Error
		want string
	}{
		{pathcount.EmptyIDError("target"), "target id is empty"},
		{pathcount.TooManyRequiredError(65), "65 required nodes given, at most 64 are supported"},
		{pathcount.Error{ErrorNum: pathcount.ErrStorage, Err: errors.New("down")}, "Storage Error: down"},
		{pathcount.Error{ErrorNum: 9999}, "Error: ErrorNum 9999"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
	if !pathcount.IsStorageError(pathcount.StorageError(errors.New("down"), "load")) {
		t.Errorf("got 'false', want storage error")
	}
}
