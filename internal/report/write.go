package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/michaeljboscia/gemini-company-intel/internal/intel"
)

// Format selects which artifacts a run produces.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "txt"
	FormatBoth Format = "both"
)

// ParseFormat validates a --format flag value. "text" is accepted as an
// alias for "txt".
func ParseFormat(s string) (Format, error) {
	if s == "text" {
		return FormatText, nil
	}
	switch Format(s) {
	case FormatJSON, FormatText, FormatBoth:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want json, txt, or both)", s)
}

// MarshalBundle serializes any bundle with two-space indentation, the layout
// downstream tooling diffs against.
func MarshalBundle(bundle interface{}) ([]byte, error) {
	return json.MarshalIndent(bundle, "", "  ")
}

// Render dispatches to the bundle-specific text renderer.
func Render(bundle interface{}) (string, error) {
	switch b := bundle.(type) {
	case *intel.DiscoveryBundle:
		return RenderDiscovery(b), nil
	case *intel.RevenueBundle:
		return RenderRevenue(b), nil
	case *intel.DeepAnalysisBundle:
		return RenderDeepAnalysis(b), nil
	}
	return "", fmt.Errorf("no text renderer for %T", bundle)
}

// Emit writes a bundle to stdout (when base is empty) or to <base>.json and/or
// <base>.txt according to format. Written paths are reported on out.
func Emit(out io.Writer, bundle interface{}, base string, format Format) error {
	if base == "" {
		if format == FormatJSON || format == FormatBoth {
			raw, err := MarshalBundle(bundle)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(raw))
		}
		if format == FormatText || format == FormatBoth {
			text, err := Render(bundle)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, text)
		}
		return nil
	}

	if format == FormatJSON || format == FormatBoth {
		raw, err := MarshalBundle(bundle)
		if err != nil {
			return err
		}
		path := base + ".json"
		if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
			return &intel.FileWriteError{Path: path, Err: err}
		}
		fmt.Fprintf(out, "JSON saved to: %s\n", path)
	}

	if format == FormatText || format == FormatBoth {
		text, err := Render(bundle)
		if err != nil {
			return err
		}
		path := base + ".txt"
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return &intel.FileWriteError{Path: path, Err: err}
		}
		fmt.Fprintf(out, "Report saved to: %s\n", path)
	}
	return nil
}
