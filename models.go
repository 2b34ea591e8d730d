package main

/* ─── Engine input ───────────────────────────────────────────────────── */

// Allowed values for the string-typed profile fields. The normalizer rejects
// anything else before the engine ever sees it.
const (
	unitUS     = "us"
	unitMetric = "metric"

	sexMale   = "male"
	sexFemale = "female"

	bodyFatKnown   = "known"
	bodyFatUnknown = "unknown"
)

// activityInput selects the TDEE multiplier. Exactly one of Preset /
// CustomMultiplier is populated, chosen by UseCustom — the normalizer
// guarantees this, the engine only reads it.
type activityInput struct {
	Preset           *float64
	UseCustom        bool
	CustomMultiplier *float64
}

// goalDeltas are signed kcal/day offsets applied to TDEE per goal.
// Cut is expected negative and Bulk positive, but the engine applies
// whatever is supplied without clamping.
type goalDeltas struct {
	Cut    float64
	Bulk   float64
	Recomp float64
}

// dexaInput carries scan-measured body composition. When enabled, any mass
// that is present overrides the body-fat-percentage derivation.
type dexaInput struct {
	Enabled    bool
	FatMassKg  *float64
	LeanMassKg *float64
}

// profileInput is the canonical, validated record the engine consumes.
// Height and weight each have one field populated per UnitSystem; the other
// system's field is ignored even if set. The engine never mutates it.
type profileInput struct {
	UnitSystem string
	Sex        string
	AgeYears   int

	HeightCm *float64
	HeightIn *float64
	WeightKg *float64
	WeightLb *float64

	BodyFatMode    string
	BodyFatPercent *float64 // percentage (20 means 20%), never a fraction

	Activity          activityInput
	Deltas            goalDeltas
	BulkProteinGPerLb float64
	Dexa              dexaInput
}

/* ─── Engine output ──────────────────────────────────────────────────── */

// bmrMethods holds every formula's rounded estimate. A nil field means the
// formula's inputs were never resolved — distinct from a computed zero, so
// presence is a pointer check, never a truthiness check.
type bmrMethods struct {
	Mifflin               *int `json:"mifflin,omitempty"`
	RevisedHarrisBenedict *int `json:"revised_harris_benedict,omitempty"`
	KatchMcArdle          *int `json:"katch_mcardle,omitempty"`
	Nelson                *int `json:"nelson,omitempty"`
	Muller                *int `json:"muller,omitempty"`
}

// bmrBreakdown pairs the recommended BMR with the per-formula estimates.
type bmrBreakdown struct {
	RecommendedBMR int        `json:"recommended_bmr"`
	Methods        bmrMethods `json:"methods"`
}

// macroTargets is one goal's daily targets. All fields are rounded
// independently at assembly, so the per-macro calories summed back up may
// drift from Calories by a couple kcal. CarbsG can be negative when the
// calorie base is too small for the protein and fat targets.
type macroTargets struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	FatG     int `json:"fat_g"`
	CarbsG   int `json:"carbs_g"`
}

// calcResults is the full output of one engine call. Warnings holds one
// entry per goal whose fat target came out under 50 g/day.
type calcResults struct {
	BMR         bmrBreakdown `json:"bmr"`
	TDEE        int          `json:"tdee"`
	Maintenance macroTargets `json:"maintenance"`
	Cut         macroTargets `json:"cut"`
	Bulk        macroTargets `json:"bulk"`
	Recomp      macroTargets `json:"recomp"`
	Warnings    []string     `json:"warnings"`
}

/* ─── API request shape ──────────────────────────────────────────────── */

// calculateRequest is the request body for POST /api/calculate and for each
// live WebSocket frame — the raw form state as the browser posts it.
// Pointer fields distinguish "not entered" from zero.
type calculateRequest struct {
	UnitSystem string `json:"unit_system"`
	Sex        string `json:"sex"`
	AgeYears   int    `json:"age_years"`

	HeightCm *float64 `json:"height_cm"`
	HeightIn *float64 `json:"height_in"`
	WeightKg *float64 `json:"weight_kg"`
	WeightLb *float64 `json:"weight_lb"`

	BodyFatMode    string   `json:"body_fat_mode"`
	BodyFatPercent *float64 `json:"body_fat_percent"` // fraction-style entries in (0,1] are scaled x100

	ActivityPreset    *float64 `json:"activity_preset"`
	UseCustomActivity bool     `json:"use_custom_activity"`
	CustomMultiplier  *float64 `json:"custom_multiplier"`

	CutDelta    *float64 `json:"cut_delta"`
	BulkDelta   *float64 `json:"bulk_delta"`
	RecompDelta *float64 `json:"recomp_delta"`

	BulkProteinGPerLb *float64 `json:"bulk_protein_g_per_lb"`

	DexaEnabled    bool     `json:"dexa_enabled"`
	DexaFatMassKg  *float64 `json:"dexa_fat_mass_kg"`
	DexaLeanMassKg *float64 `json:"dexa_lean_mass_kg"`
}
