// Package services holds shared infrastructure for the external tool and API
// collaborators: error classification markers and the Wrap helper that tags
// stage failures so the pipeline can report which stage and record failed.
package services
