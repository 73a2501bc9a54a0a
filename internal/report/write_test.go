package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaeljboscia/gemini-company-intel/internal/intel"
)

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"json", "txt", "both"} {
		f, err := ParseFormat(valid)
		require.NoError(t, err)
		assert.Equal(t, Format(valid), f)
	}
	f, err := ParseFormat("text")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestMarshalBundleIndentation(t *testing.T) {
	raw, err := MarshalBundle(&intel.RevenueBundle{CompanyName: "Acme"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n  \""), "two-space indent")
}

func TestEmitStdout(t *testing.T) {
	discovery := &intel.DiscoveryBundle{CompanyName: "Acme", Domain: "acme.com"}

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Emit(&out, discovery, "", FormatJSON))

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, "Acme", decoded["company_name"])
		assert.NotContains(t, out.String(), "COMPANY INTELLIGENCE REPORT")
	})

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Emit(&out, discovery, "", FormatText))

		assert.Contains(t, out.String(), "COMPANY INTELLIGENCE REPORT: Acme")
		assert.False(t, strings.HasPrefix(out.String(), "{"), "text format emits the report, not JSON")
	})

	t.Run("both", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Emit(&out, discovery, "", FormatBoth))

		assert.True(t, strings.HasPrefix(out.String(), "{"), "JSON first")
		assert.Contains(t, out.String(), "COMPANY INTELLIGENCE REPORT: Acme")
	})
}

func TestEmitFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "acme")
	bundle := &intel.DiscoveryBundle{CompanyName: "Acme", Domain: "acme.com"}

	var out bytes.Buffer
	require.NoError(t, Emit(&out, bundle, base, FormatBoth))

	raw, err := os.ReadFile(base + ".json")
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Acme", decoded["company_name"])

	text, err := os.ReadFile(base + ".txt")
	require.NoError(t, err)
	assert.Contains(t, string(text), "COMPANY INTELLIGENCE REPORT: Acme")

	assert.Contains(t, out.String(), base+".json")
	assert.Contains(t, out.String(), base+".txt")
}

func TestEmitJSONOnly(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "acme")
	bundle := &intel.RevenueBundle{CompanyName: "Acme"}

	var out bytes.Buffer
	require.NoError(t, Emit(&out, bundle, base, FormatJSON))

	_, err := os.Stat(base + ".json")
	require.NoError(t, err)
	_, err = os.Stat(base + ".txt")
	assert.True(t, os.IsNotExist(err))
}

func TestEmitWriteFailure(t *testing.T) {
	bundle := &intel.RevenueBundle{CompanyName: "Acme"}
	base := filepath.Join(t.TempDir(), "missing", "nested", "acme")

	var out bytes.Buffer
	err := Emit(&out, bundle, base, FormatJSON)
	require.Error(t, err)

	var writeErr *intel.FileWriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, base+".json", writeErr.Path)
}
