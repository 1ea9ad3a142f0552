// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// ConnectivityMonitor reports whether the remote store is reachable and
// notifies subscribers on transitions. It replaces the browser
// online/offline events of the original client.
type ConnectivityMonitor interface {
	// Online reports the last observed reachability state.
	Online() bool

	// Subscribe registers a callback invoked on every online/offline
	// transition. The returned function removes the subscription.
	Subscribe(fn func(online bool)) (unsubscribe func())
}
