package main

import (
	"errors"
	"math"
)

// Fixed conversion factors and calorie densities.
const (
	kgPerLb = 0.45359237
	cmPerIn = 2.54

	proteinKcalPerG = 4
	fatKcalPerG     = 9
	carbKcalPerG    = 4
)

// lowFatWarning is appended once per goal whose fat target lands under 50 g/day.
const lowFatWarning = "Fat intake is below 50 g/day."

// activityPresets maps each selectable TDEE multiplier to its label. This is
// the single source of truth for valid presets — also used for input
// validation in normalizeProfile and served by GET /api/activity-levels.
var activityPresets = map[float64]string{
	1.2:   "sedentary",
	1.375: "light",
	1.55:  "moderate",
	1.725: "active",
	1.9:   "very_active",
}

// Defaults the form starts from. The cut/recomp deltas are negative (eat
// less than TDEE), bulk positive.
const (
	defaultCutDelta          = -500.0
	defaultBulkDelta         = 500.0
	defaultRecompDelta       = -200.0
	defaultBulkProteinGPerLb = 1.0
)

/* ─── Unit & composition resolution ──────────────────────────────────── */

// resolvedBody holds the working scalars after unit conversion and body-
// composition resolution. Masses stay nil when neither DEXA data nor a known
// body-fat percentage can supply them — formulas that need them are skipped.
type resolvedBody struct {
	weightKg   float64
	weightLb   float64
	heightCm   float64
	fatMassKg  *float64
	leanMassKg *float64
}

// resolveBody converts height/weight from the active unit system and resolves
// fat/lean mass. DEXA masses win over a body-fat-percentage derivation; a
// partial scan (one mass) still supplies what it has. Returns an error when
// the active unit system's height or weight is missing — that is a broken
// precondition, not something to paper over with a default.
func resolveBody(p profileInput) (resolvedBody, error) {
	var b resolvedBody

	switch p.UnitSystem {
	case unitUS:
		if p.WeightLb == nil || p.HeightIn == nil {
			return b, errors.New("weight_lb and height_in are required for us units")
		}
		b.weightLb = *p.WeightLb
		b.weightKg = *p.WeightLb * kgPerLb
		b.heightCm = *p.HeightIn * cmPerIn
	case unitMetric:
		if p.WeightKg == nil || p.HeightCm == nil {
			return b, errors.New("weight_kg and height_cm are required for metric units")
		}
		b.weightKg = *p.WeightKg
		b.weightLb = *p.WeightKg / kgPerLb
		b.heightCm = *p.HeightCm
	default:
		return b, errors.New("unit_system must be us or metric")
	}

	switch {
	case p.Dexa.Enabled && (p.Dexa.FatMassKg != nil || p.Dexa.LeanMassKg != nil):
		b.fatMassKg = p.Dexa.FatMassKg
		b.leanMassKg = p.Dexa.LeanMassKg
	case p.BodyFatMode == bodyFatKnown && p.BodyFatPercent != nil:
		fm := b.weightKg * *p.BodyFatPercent / 100
		lm := b.weightKg - fm
		b.fatMassKg = &fm
		b.leanMassKg = &lm
	}

	return b, nil
}

/* ─── BMR formula bank ───────────────────────────────────────────────── */

// bmrEstimates holds each formula's unrounded estimate. Mifflin-St Jeor and
// Revised Harris-Benedict only need height/weight/age so they are always
// computed; the composition-based formulas stay nil when their masses never
// resolved.
type bmrEstimates struct {
	mifflin   float64
	revisedHB float64
	katch     *float64 // needs lean mass
	nelson    *float64 // needs lean and fat mass
	muller    *float64 // needs lean and fat mass
}

// computeBMREstimates evaluates every formula whose inputs are available.
// Absent inputs produce an absent estimate, never a zero and never an error.
func computeBMREstimates(sex string, ageYears int, b resolvedBody) bmrEstimates {
	var e bmrEstimates
	age := float64(ageYears)

	// Mifflin-St Jeor: shared terms plus a per-sex constant.
	e.mifflin = 10*b.weightKg + 6.25*b.heightCm - 5*age
	if sex == sexMale {
		e.mifflin += 5
	} else {
		e.mifflin -= 161
	}

	// Revised Harris-Benedict: fully separate coefficient sets per sex.
	if sex == sexMale {
		e.revisedHB = 88.362 + 13.397*b.weightKg + 4.799*b.heightCm - 5.677*age
	} else {
		e.revisedHB = 447.593 + 9.247*b.weightKg + 3.098*b.heightCm - 4.33*age
	}

	if b.leanMassKg != nil {
		katch := 370 + 21.6**b.leanMassKg
		e.katch = &katch
	}
	if b.leanMassKg != nil && b.fatMassKg != nil {
		nelson := 25.8**b.leanMassKg + 4.04**b.fatMassKg
		muller := 13.587**b.leanMassKg + 9.613**b.fatMassKg + 198
		e.nelson = &nelson
		e.muller = &muller
	}

	return e
}

// recommendedBMR picks the value the rest of the calculation builds on.
// Katch-McArdle is trusted when the user declared a known body fat and lean
// mass resolved (composition-aware beats population-average); otherwise the
// mean of the two always-computable formulas is the safe fallback.
func recommendedBMR(p profileInput, e bmrEstimates) float64 {
	if p.BodyFatMode == bodyFatKnown && e.katch != nil {
		return *e.katch
	}
	return (e.mifflin + e.revisedHB) / 2
}

/* ─── Activity & macro split ─────────────────────────────────────────── */

// activityMultiplier returns the TDEE multiplier from whichever source
// UseCustom selects. A missing source is a broken precondition.
func activityMultiplier(a activityInput) (float64, error) {
	if a.UseCustom {
		if a.CustomMultiplier == nil {
			return 0, errors.New("custom_multiplier is required when use_custom_activity is set")
		}
		return *a.CustomMultiplier, nil
	}
	if a.Preset == nil {
		return 0, errors.New("activity_preset is required")
	}
	return *a.Preset, nil
}

// macroSplit is one goal's macro computation at full float precision.
// Rounding happens once, at result assembly.
type macroSplit struct {
	calories float64
	proteinG float64
	fatG     float64
	carbsG   float64
	lowFat   bool
}

// computeMacros allocates a calorie base into protein/fat/carb grams. Fat
// takes a fixed fraction of calories; carbs get whatever remains after
// protein and fat, which can legitimately go negative — that is surfaced
// as-is, not clamped.
func computeMacros(calories, proteinG, fatFraction float64) macroSplit {
	fatG := calories * fatFraction / fatKcalPerG
	carbsG := (calories - proteinG*proteinKcalPerG - fatG*fatKcalPerG) / carbKcalPerG
	return macroSplit{
		calories: calories,
		proteinG: proteinG,
		fatG:     fatG,
		carbsG:   carbsG,
		lowFat:   fatG < 50,
	}
}

/* ─── Engine entry point ─────────────────────────────────────────────── */

// roundInt rounds to nearest rather than truncating, so results don't drift
// systematically low.
func roundInt(v float64) int {
	return int(math.Round(v))
}

// roundPtr rounds an optional estimate, preserving absence.
func roundPtr(v *float64) *int {
	if v == nil {
		return nil
	}
	r := roundInt(*v)
	return &r
}

// toTargets rounds a macroSplit's four fields independently. The rounded
// macros re-summed as calories may differ from the rounded calorie field by
// a kcal or two; that drift is accepted.
func toTargets(s macroSplit) macroTargets {
	return macroTargets{
		Calories: roundInt(s.calories),
		ProteinG: roundInt(s.proteinG),
		FatG:     roundInt(s.fatG),
		CarbsG:   roundInt(s.carbsG),
	}
}

// calculateAll is the calculation engine: profile in, full results out.
// Pure and deterministic — no I/O, no shared state, the input is read-only.
// Either the full result is produced or an error; never a partial answer.
func calculateAll(p profileInput) (calcResults, error) {
	body, err := resolveBody(p)
	if err != nil {
		return calcResults{}, err
	}

	estimates := computeBMREstimates(p.Sex, p.AgeYears, body)
	recommended := recommendedBMR(p, estimates)

	mult, err := activityMultiplier(p.Activity)
	if err != nil {
		return calcResults{}, err
	}
	tdee := recommended * mult

	// One shared split routine, four parameter sets. Protein rides weight in
	// pounds at 1 g/lb except for bulk, which uses the user's chosen density.
	maintenance := computeMacros(tdee, body.weightLb, 0.25)
	cut := computeMacros(tdee+p.Deltas.Cut, body.weightLb, 0.25)
	recomp := computeMacros(tdee+p.Deltas.Recomp, body.weightLb, 0.20)
	bulk := computeMacros(tdee+p.Deltas.Bulk, body.weightLb*p.BulkProteinGPerLb, 0.30)

	warnings := []string{}
	for _, s := range []macroSplit{maintenance, cut, recomp, bulk} {
		if s.lowFat {
			warnings = append(warnings, lowFatWarning)
		}
	}

	return calcResults{
		BMR: bmrBreakdown{
			RecommendedBMR: roundInt(recommended),
			Methods: bmrMethods{
				Mifflin:               roundPtr(&estimates.mifflin),
				RevisedHarrisBenedict: roundPtr(&estimates.revisedHB),
				KatchMcArdle:          roundPtr(estimates.katch),
				Nelson:                roundPtr(estimates.nelson),
				Muller:                roundPtr(estimates.muller),
			},
		},
		TDEE:        roundInt(tdee),
		Maintenance: toTargets(maintenance),
		Cut:         toTargets(cut),
		Bulk:        toTargets(bulk),
		Recomp:      toTargets(recomp),
		Warnings:    warnings,
	}, nil
}
