package core

import (
	"errors"
	"testing"

	"github.com/chainproc/chainproc/common"
	"github.com/chainproc/chainproc/core/state"
	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/params"
)

type fakeBeaconWriter struct {
	called bool
	got    common.Hash
	err    error
}

func (f *fakeBeaconWriter) WriteBeaconRoot(root common.Hash, spec *params.Spec) error {
	f.called = true
	f.got = root
	return f.err
}

func TestBeaconRootHandlerSkipsPreCancun(t *testing.T) {
	ws := state.NewMemoryState()
	writer := &fakeBeaconWriter{}
	h := &DefaultBeaconRootHandler{State: ws, Writer: writer}

	root := common.BytesToHash([]byte{1})
	block := &types.Block{Header: &types.Header{BeaconRoot: &root}}
	if err := h.handle(block, &params.Spec{IsCancunActive: false}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if writer.called {
		t.Fatalf("beacon-root writer must not be invoked pre-Cancun")
	}
}

func TestBeaconRootHandlerSkipsWithoutBeaconRoot(t *testing.T) {
	ws := state.NewMemoryState()
	writer := &fakeBeaconWriter{}
	h := &DefaultBeaconRootHandler{State: ws, Writer: writer}

	block := &types.Block{Header: &types.Header{BeaconRoot: nil}}
	if err := h.handle(block, &params.Spec{IsCancunActive: true}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if writer.called {
		t.Fatalf("beacon-root writer must not be invoked when the header carries no beacon root")
	}
}

func TestBeaconRootHandlerAppliesAndCommitsWhenActive(t *testing.T) {
	ws := state.NewMemoryState()
	writer := &fakeBeaconWriter{}
	h := &DefaultBeaconRootHandler{State: ws, Writer: writer}

	root := common.BytesToHash([]byte{0xaa})
	block := &types.Block{Header: &types.Header{BeaconRoot: &root}}
	if err := h.handle(block, &params.Spec{IsCancunActive: true}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !writer.called || writer.got != root {
		t.Fatalf("expected the beacon-root writer to be called with %v, got called=%v got=%v", root, writer.called, writer.got)
	}
}

func TestBeaconRootHandlerWrapsWriterFailure(t *testing.T) {
	ws := state.NewMemoryState()
	writer := &fakeBeaconWriter{err: errors.New("boom")}
	h := &DefaultBeaconRootHandler{State: ws, Writer: writer}

	root := common.BytesToHash([]byte{1})
	block := &types.Block{Header: &types.Header{BeaconRoot: &root}}
	if err := h.handle(block, &params.Spec{IsCancunActive: true}); err == nil {
		t.Fatalf("expected handle to surface the writer's failure")
	}
}
