package errors_test

import (
	"errors"
	"testing"

	academyerr "github.com/easyops/context-academy-go/pkg/core/errors"
)

func TestWrapError(t *testing.T) {
	if academyerr.WrapError(nil, "ctx") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	err := academyerr.WrapError(academyerr.ErrEmptyCatalog, "scenario support")
	if !errors.Is(err, academyerr.ErrEmptyCatalog) {
		t.Errorf("wrapped error should match ErrEmptyCatalog")
	}
	if err.Error() != "scenario support: empty response catalog" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		err         error
		wantWarning bool
		wantFatal   bool
	}{
		{academyerr.ErrEmptyCatalog, false, true},
		{academyerr.ErrUnknownComponentReference, false, true},
		{academyerr.ErrDuplicateExactMatch, true, false},
		{academyerr.ErrTokenDrift, true, false},
		{academyerr.WrapError(academyerr.ErrMissingFullResponse, "s"), true, false},
		{academyerr.ErrScenarioNotFound, false, false},
		{nil, false, false},
	}

	for _, tt := range tests {
		if got := academyerr.IsWarning(tt.err); got != tt.wantWarning {
			t.Errorf("IsWarning(%v) = %v, want %v", tt.err, got, tt.wantWarning)
		}
		if got := academyerr.IsFatal(tt.err); got != tt.wantFatal {
			t.Errorf("IsFatal(%v) = %v, want %v", tt.err, got, tt.wantFatal)
		}
	}
}
