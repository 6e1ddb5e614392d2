/*
Package custody defines all common interfaces to weave
together the various subpackages of a shared custody ledger,
as well as implementations of some of the simpler components
(when interfaces would be too much overhead).

We pass context through context.Context between the router,
middleware, and handlers. Each extension, such as auth, may add
its own keys to enrich the context with specific data.

There should exist two functions for every XYZ of type T
that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/
package custody
