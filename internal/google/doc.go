// Package google handles OAuth2 authentication for the Google Tasks API.
//
// The sync uses the installed-app flow: the auth command prints an
// authorization URL, the operator pastes back the code, and the exchanged
// token is persisted as JSON in the user cache directory. Subsequent runs
// load and refresh the cached token without interaction.
//
// Client credentials come from the GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET
// environment variables; users create their own OAuth app in the Google
// Cloud Console.
package google
