// Package password provides one-way salted hashing and verification of user
// secrets using argon2id in PHC string format. A fresh salt is drawn for
// every hash, verification recomputes with the embedded parameters and
// compares in constant time, and malformed stored hashes verify as false
// rather than erroring.
package password
