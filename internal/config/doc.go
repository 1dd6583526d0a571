// Package config loads sync daemon settings from the environment.
//
// A .env file in the working directory is loaded if present; real environment
// variables always win over .env entries. Required settings produce a
// descriptive error at startup rather than a failure deep inside a sync
// cycle.
package config
