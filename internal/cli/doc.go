// Package cli provides smaersctl, an interactive client for the SMAERS
// service built on the fiskaly package.
//
// On start it either resumes a session from a configured Context or logs in
// with API credentials, prompting for the secret when none is configured.
// Commands can be given once on the command line or typed into a REPL:
//
//	version                                       SMAERS and client versions
//	config                                        current configuration
//	configure <level> <file> <client_ms> <smaers_ms>
//	request <METHOD> <PATH> [json-body]           proxy an API call
//	context                                       print the session Context
//
// Failures are printed with their kind and, for service errors, the remote
// code, so they can be matched against SMAERS logs.
package cli
