package intel

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/michaeljboscia/gemini-company-intel/internal/gemini"
)

// State tracks a run through the research pipeline. The follow-up stage is
// conditional; FAILED is terminal and reachable from any non-done state.
type State int

const (
	StateStart State = iota
	StatePrimarySent
	StatePrimaryValidated
	StateFollowupSent
	StateAssembled
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "START"
	case StatePrimarySent:
		return "PRIMARY_QUERY_SENT"
	case StatePrimaryValidated:
		return "PRIMARY_VALIDATED"
	case StateFollowupSent:
		return "FOLLOWUP_QUERY_SENT"
	case StateAssembled:
		return "ASSEMBLED"
	case StateDone:
		return "DONE"
	case StateFailed:
		return "FAILED"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Orchestrator sequences the AI calls for a run: primary query, conditional
// acquirer follow-up, assembly. Strictly sequential; at most one call in
// flight; no retries anywhere. Calls are costly, so failure is surfaced
// rather than masked.
type Orchestrator struct {
	caller   gemini.Caller
	log      *zap.Logger
	progress io.Writer // nil suppresses progress output
	model    string

	state State
}

// NewOrchestrator builds an orchestrator around an AI caller. progress
// receives user-facing status lines; pass nil for quiet runs.
func NewOrchestrator(caller gemini.Caller, log *zap.Logger, progress io.Writer) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	o := &Orchestrator{caller: caller, log: log, progress: progress}
	if c, ok := caller.(*gemini.Client); ok {
		o.model = c.Model()
	}
	return o
}

// State returns the current pipeline state.
func (o *Orchestrator) State() State { return o.state }

func (o *Orchestrator) transition(to State) {
	o.log.Debug("pipeline transition",
		zap.Stringer("from", o.state), zap.Stringer("to", to))
	o.state = to
}

func (o *Orchestrator) fail(err error) error {
	o.transition(StateFailed)
	return err
}

func (o *Orchestrator) printf(format string, args ...interface{}) {
	if o.progress != nil {
		fmt.Fprintf(o.progress, format+"\n", args...)
	}
}

func (o *Orchestrator) newMetadata(req Request, start time.Time, sources []string) Metadata {
	return Metadata{
		CollectionID:     uuid.NewString(),
		CollectedAt:      time.Now().UTC(),
		Domain:           req.Domain,
		CompanyName:      req.CompanyName,
		Model:            o.model,
		ElapsedSeconds:   roundTenth(time.Since(start).Seconds()),
		GroundingSources: sources,
	}
}

func roundTenth(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}

// RunDiscovery executes the discovery pipeline: primary grounded query,
// validation, conditional acquirer follow-up, assembly. The follow-up is
// best-effort: its failure degrades the bundle (AcquirerIntel omitted)
// instead of failing the run.
func (o *Orchestrator) RunDiscovery(ctx context.Context, req Request, includeAcquirer bool) (*DiscoveryBundle, error) {
	start := time.Now()
	o.state = StateStart

	query := BuildQuery(req)
	o.printf("[1/2] Collecting company intelligence...")
	o.transition(StatePrimarySent)
	result, err := o.caller.Generate(ctx, gemini.Request{
		System:    query.System,
		Prompt:    query.Prompt,
		Grounding: query.Grounding,
		Spec:      query.Spec,
	})
	if err != nil {
		return nil, o.fail(fmt.Errorf("discovery query failed: %w", err))
	}

	bundle, err := DecodeDiscovery(result.Payload)
	if err != nil {
		return nil, o.fail(err)
	}
	o.transition(StatePrimaryValidated)
	o.printf("    Found %d strategic statements", len(bundle.StrategicStatements))
	o.printf("    Found %d executives", len(bundle.KeyExecutives))

	groundingSources := result.GroundingSources

	if change, triggered := findAcquisition(bundle.OwnershipChanges); triggered && includeAcquirer {
		o.printf("\n[2/2] Acquisition detected: %s acquired by %s", req.CompanyName, change.CounterpartyName)
		o.printf("    Running secondary collection on acquirer...")
		intel, sources := o.runAcquirerFollowup(ctx, change, req.CompanyName)
		bundle.AcquirerIntel = intel
		groundingSources = append(groundingSources, sources...)
	} else if includeAcquirer {
		o.printf("\n[2/2] No acquisitions detected")
	}

	bundle.CompanyName = req.CompanyName
	bundle.Domain = req.Domain
	bundle.Metadata = o.newMetadata(req, start, groundingSources)
	o.transition(StateAssembled)
	o.transition(StateDone)
	return bundle, nil
}

// runAcquirerFollowup issues the follow-up query. Never fails the run:
// errors are logged as warnings and the bundle loses only AcquirerIntel.
func (o *Orchestrator) runAcquirerFollowup(ctx context.Context, change OwnershipChange, acquiredCompany string) (*AcquirerIntel, []string) {
	query := BuildAcquirerQuery(change, acquiredCompany)
	o.transition(StateFollowupSent)
	result, err := o.caller.Generate(ctx, gemini.Request{
		Prompt:    query.Prompt,
		Grounding: query.Grounding,
		Spec:      query.Spec,
	})
	if err != nil {
		o.log.Warn("acquirer follow-up failed, continuing without acquirer intel",
			zap.String("acquirer", change.CounterpartyName), zap.Error(err))
		o.printf("    Warning: acquirer research failed (%v)", err)
		return nil, nil
	}

	intel, err := DecodeAcquirer(result.Payload)
	if err != nil {
		o.log.Warn("acquirer follow-up returned bad schema, continuing without acquirer intel",
			zap.String("acquirer", change.CounterpartyName), zap.Error(err))
		o.printf("    Warning: acquirer response invalid (%v)", err)
		return nil, result.GroundingSources
	}
	if intel.AcquirerName == "" {
		intel.AcquirerName = change.CounterpartyName
	}
	if intel.AcquirerDomain == "" {
		intel.AcquirerDomain = change.CounterpartyDomain
	}
	o.printf("    Acquirer executives: %d", len(intel.Executives))
	o.printf("    Other acquisitions: %d", len(intel.OtherAcquisitions))
	return intel, result.GroundingSources
}

// findAcquisition returns the first ownership change that triggers the
// acquirer follow-up.
func findAcquisition(changes []OwnershipChange) (OwnershipChange, bool) {
	for _, c := range changes {
		if c.TriggersFollowup() {
			return c, true
		}
	}
	return OwnershipChange{}, false
}

// RunRevenue executes the revenue pipeline: grounded research query,
// validation, confidence derivation, assembly.
func (o *Orchestrator) RunRevenue(ctx context.Context, req Request) (*RevenueBundle, error) {
	start := time.Now()
	o.state = StateStart

	query := BuildQuery(req)
	o.printf("[1/2] Researching revenue via Gemini...")
	o.transition(StatePrimarySent)
	result, err := o.caller.Generate(ctx, gemini.Request{
		System:    query.System,
		Prompt:    query.Prompt,
		Grounding: query.Grounding,
		Spec:      query.Spec,
	})
	if err != nil {
		return nil, o.fail(fmt.Errorf("revenue query failed: %w", err))
	}

	bundle, err := DecodeRevenue(result.Payload)
	if err != nil {
		return nil, o.fail(err)
	}
	o.transition(StatePrimaryValidated)
	o.printf("    Found %d revenue estimates", len(bundle.RevenueEstimates))

	o.printf("[2/2] Calculating confidence...")
	bundle.Confidence = DeriveConfidence(bundle.RevenueEstimates, bundle.ResearchQuality)
	o.printf("    Confidence: %s", bundle.Confidence)

	bundle.CompanyName = req.CompanyName
	if bundle.Domain == "" {
		bundle.Domain = req.Domain
	}
	bundle.Metadata = o.newMetadata(req, start, result.GroundingSources)
	o.transition(StateAssembled)
	o.transition(StateDone)
	return bundle, nil
}
