package core

import "github.com/chainproc/chainproc/core/types"

// Tracer is the caller-supplied tracer passed into Process, bound as a
// sub-tracer of the processor's long-lived receipts sink for each block
// (spec.md §4.1 component 3, §4.2 step 4).
type Tracer interface {
	// TracesRewards reports whether this tracer wants per-reward tracing
	// scopes opened during reward application (spec.md §4.3).
	TracesRewards() bool

	// TracesState reports whether reward-induced state deltas should be
	// made observable via a dedicated state-tracing commit (spec.md §4.3).
	TracesState() bool

	// StateTracer returns the sub-tracer to notify of balance changes
	// when TracesState is true. May return nil otherwise.
	StateTracer() StateTracerNotifiee

	// StartReward opens a per-reward tracing scope for r, called only when
	// TracesRewards reports true (spec.md §4.3: "start a per-reward
	// tracing scope ... close the tracing scope").
	StartReward(r Reward)

	// EndReward closes the tracing scope opened by the matching StartReward.
	EndReward()
}

// NoopTracer traces nothing; it is the zero-cost default when a caller has
// no tracing needs.
type NoopTracer struct{}

func (NoopTracer) TracesRewards() bool              { return false }
func (NoopTracer) TracesState() bool                { return false }
func (NoopTracer) StateTracer() StateTracerNotifiee { return nil }
func (NoopTracer) StartReward(Reward)               {}
func (NoopTracer) EndReward()                       {}

// receiptsSink is the single long-lived tracing sink of spec.md §4.1
// component 3: one instance lives for the processor's whole lifetime,
// reused across every block in every Process call, with the caller's
// tracer swapped in and out per block.
type receiptsSink struct {
	header *types.Header
	sub    Tracer
}

func newReceiptsSink() *receiptsSink { return &receiptsSink{sub: NoopTracer{}} }

// bind swaps in sub as this block's sub-tracer, beginning a new block
// trace (spec.md §4.2 step 4: "bind the caller's tracer as sub-tracer,
// begin a new block trace").
func (s *receiptsSink) bind(header *types.Header, sub Tracer) {
	if sub == nil {
		sub = NoopTracer{}
	}
	s.header = header
	s.sub = sub
}

func (s *receiptsSink) StartBlock(header *types.Header) { s.header = header }
func (s *receiptsSink) EndBlock()                       { s.header = nil }
func (s *receiptsSink) TracesRewards() bool             { return s.sub.TracesRewards() }
func (s *receiptsSink) TracesState() bool               { return s.sub.TracesState() }
func (s *receiptsSink) StateTracer() StateTracerNotifiee { return s.sub.StateTracer() }
func (s *receiptsSink) StartReward(r Reward)             { s.sub.StartReward(r) }
func (s *receiptsSink) EndReward()                       { s.sub.EndReward() }
