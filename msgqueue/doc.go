// Package msgqueue
// Author: momentics <momentics@gmail.com>
//
// Queue-backed multi-message channel.
//
// Unlike the oneshot package this is a FIFO of any number of messages: a
// spinlock.Mutex guards an eapache/queue ring, and Receive polls with a sleep
// between attempts. It trades latency for simplicity and is not one-shot.
package msgqueue
