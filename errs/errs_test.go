package errs

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/chainproc/chainproc/core/types"
)

func testBlock(number int64) *types.Block {
	return &types.Block{Header: &types.Header{Number: big.NewInt(number)}}
}

func TestInvalidBlockErrorMessage(t *testing.T) {
	err := &InvalidBlockError{Suggested: testBlock(7), Reason: "state root mismatch"}

	msg := err.Error()
	if !strings.Contains(msg, "7") || !strings.Contains(msg, "state root mismatch") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestExecutionFailureErrorUnwraps(t *testing.T) {
	wrapped := errors.New("insufficient balance")
	err := &ExecutionFailureError{Block: testBlock(3), Stage: "reward", Err: wrapped}

	if !errors.Is(err, wrapped) {
		t.Fatalf("expected errors.Is to find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "reward") {
		t.Fatalf("expected stage name in message, got %q", err.Error())
	}
}

func TestStateFailureErrorUnwraps(t *testing.T) {
	wrapped := errors.New("missing trie node")
	err := &StateFailureError{Op: "commit", Err: wrapped}

	if !errors.Is(err, wrapped) {
		t.Fatalf("expected errors.Is to find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "commit") {
		t.Fatalf("expected op name in message, got %q", err.Error())
	}
}

func TestInputDomainErrorMessage(t *testing.T) {
	err := &InputDomainError{Field: "Executor"}

	if !strings.Contains(err.Error(), "Executor") {
		t.Fatalf("expected field name in message, got %q", err.Error())
	}
}

func TestErrorsAsRecoversConcreteType(t *testing.T) {
	var err error = &InvalidBlockError{Suggested: testBlock(1), Reason: "bad"}

	var target *InvalidBlockError
	if !errors.As(err, &target) {
		t.Fatalf("expected errors.As to recover *InvalidBlockError")
	}
	if target.Reason != "bad" {
		t.Fatalf("recovered error has wrong Reason: %q", target.Reason)
	}
}
