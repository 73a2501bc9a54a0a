package intel

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/michaeljboscia/gemini-company-intel/internal/gemini"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeCaller returns canned payloads in call order and records every request.
type fakeCaller struct {
	payloads []map[string]interface{}
	errs     []error
	requests []gemini.Request
	sources  []string
}

func (f *fakeCaller) Generate(ctx context.Context, req gemini.Request) (*gemini.Result, error) {
	call := len(f.requests)
	f.requests = append(f.requests, req)
	if call < len(f.errs) && f.errs[call] != nil {
		return nil, f.errs[call]
	}
	if call >= len(f.payloads) {
		return nil, errors.New("unexpected extra call")
	}
	return &gemini.Result{Payload: f.payloads[call], GroundingSources: f.sources}, nil
}

func acquirerPayload() map[string]interface{} {
	return map[string]interface{}{
		"acquirer_name":   "BigCo Holdings",
		"acquirer_domain": "bigco.com",
		"key_executives": []interface{}{
			map[string]interface{}{"name": "Pat Doe", "title": "CEO"},
		},
		"other_acquisitions": []interface{}{
			map[string]interface{}{"company": "WidgetCo", "date": "2023-05"},
		},
	}
}

func discoveryWithAcquisition() map[string]interface{} {
	payload := discoveryPayload()
	payload["ownership_changes"] = []interface{}{
		map[string]interface{}{
			"event_type":          "acquisition",
			"counterparty_name":   "BigCo Holdings",
			"counterparty_domain": "bigco.com",
			"date":                "2024-01",
		},
	}
	return payload
}

func TestRunDiscovery(t *testing.T) {
	caller := &fakeCaller{
		payloads: []map[string]interface{}{discoveryPayload()},
		sources:  []string{"https://example.com/source"},
	}
	orch := NewOrchestrator(caller, nil, nil)
	req := NewRequest("acme.com", "", ModeDiscovery)

	bundle, err := orch.RunDiscovery(context.Background(), req, true)
	require.NoError(t, err)

	assert.Equal(t, StateDone, orch.State())
	assert.Len(t, caller.requests, 1, "no acquisition, no follow-up")
	assert.Equal(t, "Acme", bundle.CompanyName)
	assert.Equal(t, "acme.com", bundle.Domain)
	assert.NotEmpty(t, bundle.Metadata.CollectionID)
	assert.Equal(t, []string{"https://example.com/source"}, bundle.Metadata.GroundingSources)
	assert.Nil(t, bundle.AcquirerIntel)

	// Primary query is grounded and carries the discovery spec.
	assert.True(t, caller.requests[0].Grounding)
	assert.Equal(t, "discovery", caller.requests[0].Spec.Name)
}

func TestRunDiscoveryAcquisitionTriggersOneFollowup(t *testing.T) {
	caller := &fakeCaller{
		payloads: []map[string]interface{}{discoveryWithAcquisition(), acquirerPayload()},
	}
	var progress bytes.Buffer
	orch := NewOrchestrator(caller, nil, &progress)

	bundle, err := orch.RunDiscovery(context.Background(), NewRequest("acme.com", "Acme Corp", ModeDiscovery), true)
	require.NoError(t, err)

	assert.Len(t, caller.requests, 2, "exactly one follow-up")
	require.NotNil(t, bundle.AcquirerIntel)
	assert.Equal(t, "BigCo Holdings", bundle.AcquirerIntel.AcquirerName)
	assert.Len(t, bundle.AcquirerIntel.OtherAcquisitions, 1)
	assert.Contains(t, progress.String(), "Acquisition detected")

	// Follow-up prompt targets the acquirer.
	assert.Contains(t, caller.requests[1].Prompt, "BigCo Holdings")
}

func TestRunDiscoveryNoAcquirerFlag(t *testing.T) {
	caller := &fakeCaller{
		payloads: []map[string]interface{}{discoveryWithAcquisition()},
	}
	orch := NewOrchestrator(caller, nil, nil)

	bundle, err := orch.RunDiscovery(context.Background(), NewRequest("acme.com", "Acme Corp", ModeDiscovery), false)
	require.NoError(t, err)

	assert.Len(t, caller.requests, 1, "follow-up suppressed")
	assert.Nil(t, bundle.AcquirerIntel)
	assert.Equal(t, StateDone, orch.State())
}

func TestRunDiscoveryFollowupFailureDegrades(t *testing.T) {
	caller := &fakeCaller{
		payloads: []map[string]interface{}{discoveryWithAcquisition(), nil},
		errs:     []error{nil, errors.New("api unavailable")},
	}
	var progress bytes.Buffer
	orch := NewOrchestrator(caller, nil, &progress)

	bundle, err := orch.RunDiscovery(context.Background(), NewRequest("acme.com", "Acme Corp", ModeDiscovery), true)
	require.NoError(t, err, "follow-up failure must not fail the run")

	assert.Nil(t, bundle.AcquirerIntel)
	assert.Equal(t, StateDone, orch.State())
	assert.Contains(t, progress.String(), "Warning")
	assert.Len(t, bundle.StrategicStatements, 1, "primary results preserved")
}

func TestRunDiscoveryPrimaryFailure(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		caller := &fakeCaller{errs: []error{errors.New("timeout")}}
		orch := NewOrchestrator(caller, nil, nil)

		_, err := orch.RunDiscovery(context.Background(), NewRequest("acme.com", "", ModeDiscovery), true)
		require.Error(t, err)
		assert.Equal(t, StateFailed, orch.State())
	})

	t.Run("schema violation", func(t *testing.T) {
		caller := &fakeCaller{
			payloads: []map[string]interface{}{{"domain": "acme.com"}},
		}
		orch := NewOrchestrator(caller, nil, nil)

		_, err := orch.RunDiscovery(context.Background(), NewRequest("acme.com", "", ModeDiscovery), true)
		require.Error(t, err)
		assert.Equal(t, StateFailed, orch.State())

		var schemaErr *SchemaError
		assert.ErrorAs(t, err, &schemaErr)
	})
}

func TestRunRevenue(t *testing.T) {
	caller := &fakeCaller{
		payloads: []map[string]interface{}{{
			"company_name": "Acme Corp",
			"domain":       "acme.com",
			"revenue_estimates": []interface{}{
				map[string]interface{}{
					"amount_millions":   float64(120),
					"source_name":       "SEC.gov 10-K",
					"source_tier":       float64(1),
					"credibility_score": float64(95),
				},
				map[string]interface{}{
					"amount_millions":   float64(110),
					"source_name":       "Earnings call transcript",
					"source_tier":       float64(2),
					"credibility_score": float64(85),
				},
			},
			"research_quality": map[string]interface{}{
				"sources_found": float64(2),
			},
		}},
	}
	orch := NewOrchestrator(caller, nil, nil)

	bundle, err := orch.RunRevenue(context.Background(), NewRequest("acme.com", "Acme Corp", ModeRevenue))
	require.NoError(t, err)

	assert.Equal(t, StateDone, orch.State())
	assert.Equal(t, ConfidenceHigh, bundle.Confidence)
	require.NotNil(t, bundle.BestEstimate())
	assert.Equal(t, 120.0, bundle.BestEstimate().AmountMillions)
	assert.Equal(t, "Acme Corp", bundle.CompanyName)
}

func TestRunRevenueNoEstimates(t *testing.T) {
	caller := &fakeCaller{
		payloads: []map[string]interface{}{{
			"company_name":      "Acme Corp",
			"revenue_estimates": []interface{}{},
		}},
	}
	orch := NewOrchestrator(caller, nil, nil)

	bundle, err := orch.RunRevenue(context.Background(), NewRequest("acme.com", "", ModeRevenue))
	require.NoError(t, err)
	assert.Equal(t, ConfidenceInsufficient, bundle.Confidence)
	assert.Nil(t, bundle.BestEstimate())
}

func TestFindAcquisition(t *testing.T) {
	changes := []OwnershipChange{
		{Type: EventMerger, CounterpartyName: "PeerCo"},
		{Type: EventAcquisition, CounterpartyName: ""},
		{Type: EventAcquisition, CounterpartyName: "BigCo"},
	}
	change, ok := findAcquisition(changes)
	require.True(t, ok)
	assert.Equal(t, "BigCo", change.CounterpartyName,
		"mergers and unnamed acquirers do not trigger the follow-up")

	_, ok = findAcquisition(changes[:2])
	assert.False(t, ok)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "START", StateStart.String())
	assert.Equal(t, "FAILED", StateFailed.String())
	assert.True(t, strings.HasPrefix(State(99).String(), "State("))
}
