// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Domain knowledge flows in three tiers: principles load with the
// domain, rubrics match per task, and contrast examples come back from
// the vector store per query.
package services
