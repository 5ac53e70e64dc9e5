// Package domain contains the core entity types for tiered expertise
// retrieval: principles, rubrics, contrast examples, assembled analysis
// contexts, and the configuration and error types shared across the engine.
//
// This package has no dependencies on adapters or services.
package domain
