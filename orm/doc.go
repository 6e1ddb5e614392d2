/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Models are serialized with protobuf and validated before every write.
* Sequences provide auto incremented keys that keep their insertion order
when compared with bytes.Compare.
*/
package orm
