/*
Package x contains the standard custody extensions.

Extensions implement common functionality (Handler, Decorator,
etc.) and can be combined together to construct an application.

All sub-packages are extensions: x/ledger is the approval ledger, x/cash
holds the pool value and x/utils provides generic decorators. This package
itself defines the Authenticator used by handlers to learn who is calling.
*/
package x
