// Package check runs the pre-build checks that guard a release build.
//
// Checks run in a fixed order and every enabled check runs, even after a
// failure. Each yields a Result tagged Passed, Failed or Skipped; the
// failures are collected into a single *Error so the caller sees every
// problem in one report.
package check
