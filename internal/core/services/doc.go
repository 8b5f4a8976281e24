// Package services implements the application's use cases: the AI-assisted
// edit session over a staged page copy, the new-document composer, and the
// daily meeting notes workflow. Services orchestrate the driven ports and
// hold no infrastructure code themselves.
package services
