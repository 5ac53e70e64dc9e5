// Package parser converts loosely structured knowledge files into typed
// entities: principles documents, rubric files, and contrast example files.
//
// Each parser is a small line-oriented state machine that tracks the current
// section explicitly. Partial or malformed input is expected: hand-authored
// knowledge bases evolve incrementally, so parsers degrade to empty optional
// fields instead of failing a whole batch.
package parser
