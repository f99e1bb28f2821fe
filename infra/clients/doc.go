// Package clients ships the builtin buildable implementations. Each file
// registers its factory on the process-wide client registry under the
// normalized identifier of the implementation, so a document can declare
// for example class "clients.http" and have it resolve here.
package clients
