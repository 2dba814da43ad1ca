// Package console holds the client-side state of the administration UI.
//
// A ViewModel tracks the selected project, the in-progress creation forms,
// the single permission being edited and any pending delete confirmation.
// It talks to the server through an API, normally *client.Client, and
// reloads the project list after every successful mutation. Nothing is
// applied optimistically: form fields are cleared only once the API call
// succeeds, and the failure text is kept in Err until the next action.
//
// The terminal front end lives in the tui subpackage.
package console
