package logging

// Standardized attribute keys used across the pipeline.
const (
	FieldComponent = "component"
	FieldStage     = "stage"
	FieldRunID     = "run_id"
	FieldSource    = "source"
	FieldOutput    = "output"
	FieldModel     = "model"
	FieldLanguage  = "language"
	FieldSegments  = "segments"
	FieldSpeakers  = "speakers"
	FieldRemoved   = "removed"
	FieldDuration  = "duration"
)
