package main

import (
	"strings"
	"testing"
)

// makeUSRequest builds a fully-valid US-unit form submission matching the
// baseline engine test profile.
func makeUSRequest() calculateRequest {
	return calculateRequest{
		UnitSystem:     unitUS,
		Sex:            sexMale,
		AgeYears:       30,
		HeightIn:       fptr(70),
		WeightLb:       fptr(180),
		BodyFatMode:    bodyFatUnknown,
		ActivityPreset: fptr(1.55),
	}
}

/* ─── Validation errors ─────────────────────────────────────────────── */

// TestNormalizeProfile_FieldErrors exercises every per-field rejection. The
// substring assert ties each case to the field named in the message, which is
// what the form displays.
func TestNormalizeProfile_FieldErrors(t *testing.T) {
	cases := []struct {
		name    string
		mutFn   func(r *calculateRequest)
		wantSub string
	}{
		{"missing weight for us", func(r *calculateRequest) { r.WeightLb = nil }, "weight_lb"},
		{"missing height for us", func(r *calculateRequest) { r.HeightIn = nil }, "height_in"},
		{"missing weight for metric", func(r *calculateRequest) {
			r.UnitSystem = unitMetric
			r.HeightCm = fptr(178)
		}, "weight_kg"},
		{"zero weight", func(r *calculateRequest) { r.WeightLb = fptr(0) }, "positive"},
		{"bad unit system", func(r *calculateRequest) { r.UnitSystem = "imperial" }, "unit_system"},
		{"bad sex", func(r *calculateRequest) { r.Sex = "other" }, "sex"},
		{"zero age", func(r *calculateRequest) { r.AgeYears = 0 }, "age_years"},
		{"bad body fat mode", func(r *calculateRequest) { r.BodyFatMode = "estimated" }, "body_fat_mode"},
		{"known mode without percent", func(r *calculateRequest) { r.BodyFatMode = bodyFatKnown }, "body_fat_percent"},
		{"missing preset", func(r *calculateRequest) { r.ActivityPreset = nil }, "activity_preset"},
		{"off-list preset", func(r *calculateRequest) { r.ActivityPreset = fptr(1.5) }, "activity_preset"},
		{"custom selected but missing", func(r *calculateRequest) { r.UseCustomActivity = true }, "custom_multiplier"},
		{"custom too low", func(r *calculateRequest) {
			r.UseCustomActivity = true
			r.CustomMultiplier = fptr(0.9)
		}, "custom_multiplier"},
		{"custom too high", func(r *calculateRequest) {
			r.UseCustomActivity = true
			r.CustomMultiplier = fptr(3.0)
		}, "custom_multiplier"},
		{"bulk protein below range", func(r *calculateRequest) { r.BulkProteinGPerLb = fptr(0.5) }, "bulk_protein_g_per_lb"},
		{"bulk protein above range", func(r *calculateRequest) { r.BulkProteinGPerLb = fptr(1.2) }, "bulk_protein_g_per_lb"},
		{"dexa enabled without masses", func(r *calculateRequest) { r.DexaEnabled = true }, "dexa"},
		{"negative dexa mass", func(r *calculateRequest) {
			r.DexaEnabled = true
			r.DexaFatMassKg = fptr(-2)
		}, "dexa_fat_mass_kg"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := makeUSRequest()
			tc.mutFn(&r)
			_, err := normalizeProfile(r)
			if err == nil {
				t.Fatalf("expected error for %s, got nil", tc.name)
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.wantSub)
			}
		})
	}
}

/* ─── Coercions and defaults ────────────────────────────────────────── */

// TestNormalizeProfile_BodyFatFractionHeuristic verifies that fraction-style
// entries in (0,1] are scaled to percentages, and that the result is clamped
// to [0,80].
func TestNormalizeProfile_BodyFatFractionHeuristic(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"fraction 0.2 becomes 20", 0.2, 20},
		{"exactly 1 scales then clamps", 1, 80},
		{"plain percentage untouched", 20, 20},
		{"over 80 clamps down", 95, 80},
		{"negative clamps to zero", -5, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := makeUSRequest()
			r.BodyFatMode = bodyFatKnown
			r.BodyFatPercent = fptr(tc.in)
			p, err := normalizeProfile(r)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.BodyFatPercent == nil || *p.BodyFatPercent != tc.want {
				t.Errorf("body fat %v normalized to %v, want %v", tc.in, p.BodyFatPercent, tc.want)
			}
		})
	}
}

// TestNormalizeProfile_Defaults verifies that omitted deltas and bulk protein
// density pick up the documented defaults, and an omitted body fat mode reads
// as unknown.
func TestNormalizeProfile_Defaults(t *testing.T) {
	r := makeUSRequest()
	r.BodyFatMode = ""

	p, err := normalizeProfile(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Deltas.Cut != -500 || p.Deltas.Bulk != 500 || p.Deltas.Recomp != -200 {
		t.Errorf("deltas = %+v, want cut -500 / bulk +500 / recomp -200", p.Deltas)
	}
	if p.BulkProteinGPerLb != 1.0 {
		t.Errorf("bulk protein density = %v, want 1.0", p.BulkProteinGPerLb)
	}
	if p.BodyFatMode != bodyFatUnknown {
		t.Errorf("body fat mode = %q, want %q", p.BodyFatMode, bodyFatUnknown)
	}
}

// TestNormalizeProfile_DeltasPassedThroughUnclamped verifies that supplied
// deltas keep their sign and magnitude — a positive cut or a negative bulk
// is the user's business.
func TestNormalizeProfile_DeltasPassedThroughUnclamped(t *testing.T) {
	r := makeUSRequest()
	r.CutDelta = fptr(250)
	r.BulkDelta = fptr(-1000)
	r.RecompDelta = fptr(0)

	p, err := normalizeProfile(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Deltas.Cut != 250 || p.Deltas.Bulk != -1000 || p.Deltas.Recomp != 0 {
		t.Errorf("deltas = %+v, want them exactly as supplied", p.Deltas)
	}
}

// TestNormalizeProfile_EndToEndScenario runs the normalized fraction entry
// through the full engine: 0.2 must behave exactly like 20%.
func TestNormalizeProfile_EndToEndScenario(t *testing.T) {
	asFraction := makeUSRequest()
	asFraction.BodyFatMode = bodyFatKnown
	asFraction.BodyFatPercent = fptr(0.2)

	asPercent := makeUSRequest()
	asPercent.BodyFatMode = bodyFatKnown
	asPercent.BodyFatPercent = fptr(20)

	pf, err := normalizeProfile(asFraction)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pp, err := normalizeProfile(asPercent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rf, err := calculateAll(pf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rp, err := calculateAll(pp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rf.BMR.RecommendedBMR != rp.BMR.RecommendedBMR || rf.TDEE != rp.TDEE {
		t.Errorf("fraction entry diverged from percentage entry: %+v vs %+v", rf.BMR, rp.BMR)
	}
}
