package main

import (
	"errors"
	"fmt"
)

// normalizeProfile turns a raw form submission into the canonical profile the
// engine trusts. All validation and coercion lives here — the engine itself
// never guesses or defaults. Returns the first problem found as an error with
// a message the form can show next to the field.
func normalizeProfile(req calculateRequest) (profileInput, error) {
	var p profileInput

	switch req.UnitSystem {
	case unitUS:
		if req.WeightLb == nil {
			return p, errors.New("weight_lb is required for us units")
		}
		if req.HeightIn == nil {
			return p, errors.New("height_in is required for us units")
		}
		if *req.WeightLb <= 0 || *req.HeightIn <= 0 {
			return p, errors.New("weight_lb and height_in must be positive")
		}
	case unitMetric:
		if req.WeightKg == nil {
			return p, errors.New("weight_kg is required for metric units")
		}
		if req.HeightCm == nil {
			return p, errors.New("height_cm is required for metric units")
		}
		if *req.WeightKg <= 0 || *req.HeightCm <= 0 {
			return p, errors.New("weight_kg and height_cm must be positive")
		}
	default:
		return p, errors.New("unit_system must be us or metric")
	}
	p.UnitSystem = req.UnitSystem
	p.HeightCm = req.HeightCm
	p.HeightIn = req.HeightIn
	p.WeightKg = req.WeightKg
	p.WeightLb = req.WeightLb

	if req.Sex != sexMale && req.Sex != sexFemale {
		return p, errors.New("sex must be male or female")
	}
	p.Sex = req.Sex

	if req.AgeYears < 1 {
		return p, errors.New("age_years must be a positive integer")
	}
	p.AgeYears = req.AgeYears

	switch req.BodyFatMode {
	case bodyFatKnown:
		if req.BodyFatPercent == nil {
			return p, errors.New("body_fat_percent is required when body_fat_mode is known")
		}
		p.BodyFatMode = bodyFatKnown
		pct := normalizeBodyFatPercent(*req.BodyFatPercent)
		p.BodyFatPercent = &pct
	case bodyFatUnknown, "":
		// An omitted mode means the user skipped the body-fat section.
		p.BodyFatMode = bodyFatUnknown
	default:
		return p, errors.New("body_fat_mode must be known or unknown")
	}

	p.Activity.UseCustom = req.UseCustomActivity
	if req.UseCustomActivity {
		if req.CustomMultiplier == nil {
			return p, errors.New("custom_multiplier is required when use_custom_activity is set")
		}
		if *req.CustomMultiplier <= 1.0 || *req.CustomMultiplier > 2.5 {
			return p, errors.New("custom_multiplier must be greater than 1.0 and at most 2.5")
		}
		p.Activity.CustomMultiplier = req.CustomMultiplier
	} else {
		if req.ActivityPreset == nil {
			return p, errors.New("activity_preset is required")
		}
		if _, ok := activityPresets[*req.ActivityPreset]; !ok {
			return p, errors.New("activity_preset must be one of: 1.2, 1.375, 1.55, 1.725, 1.9")
		}
		p.Activity.Preset = req.ActivityPreset
	}

	// Deltas are applied as supplied, sign and all. Only absence gets a default.
	p.Deltas = goalDeltas{
		Cut:    valueOr(req.CutDelta, defaultCutDelta),
		Bulk:   valueOr(req.BulkDelta, defaultBulkDelta),
		Recomp: valueOr(req.RecompDelta, defaultRecompDelta),
	}

	p.BulkProteinGPerLb = valueOr(req.BulkProteinGPerLb, defaultBulkProteinGPerLb)
	if p.BulkProteinGPerLb < 0.7 || p.BulkProteinGPerLb > 1.0 {
		return p, errors.New("bulk_protein_g_per_lb must be between 0.7 and 1.0")
	}

	if req.DexaEnabled {
		if req.DexaFatMassKg == nil && req.DexaLeanMassKg == nil {
			return p, errors.New("at least one of dexa_fat_mass_kg, dexa_lean_mass_kg is required when dexa_enabled is set")
		}
		if err := checkNonNegative("dexa_fat_mass_kg", req.DexaFatMassKg); err != nil {
			return p, err
		}
		if err := checkNonNegative("dexa_lean_mass_kg", req.DexaLeanMassKg); err != nil {
			return p, err
		}
		p.Dexa = dexaInput{Enabled: true, FatMassKg: req.DexaFatMassKg, LeanMassKg: req.DexaLeanMassKg}
	}

	return p, nil
}

// normalizeBodyFatPercent fixes up the two common entry mistakes: a value in
// (0,1] was typed as a fraction (0.2 for 20%) and gets scaled x100, and
// anything outside [0,80] is clamped to that range.
func normalizeBodyFatPercent(v float64) float64 {
	if v > 0 && v <= 1 {
		v *= 100
	}
	if v < 0 {
		return 0
	}
	if v > 80 {
		return 80
	}
	return v
}

// valueOr returns *v, or def when the field was omitted.
func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func checkNonNegative(field string, v *float64) error {
	if v != nil && *v < 0 {
		return fmt.Errorf("%s must not be negative", field)
	}
	return nil
}
