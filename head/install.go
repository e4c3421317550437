package head

import "github.com/webessex/site/router"

// Navigator is the part of the router the head binding needs.
type Navigator interface {
	AfterEach(fn router.Hook) (remove func())
	CurrentRoute() router.Location
}

// binding owns the single live registration of an installation.
type binding struct {
	client *Client
	opts   Options
	active *ActiveHead
}

// apply replaces the live registration with the head for loc.
func (b *binding) apply(loc router.Location) {
	payload := BuildFromRoute(loc, b.opts)
	if b.active != nil {
		b.active.Dispose()
	}
	b.active = b.client.Push(payload)
}

// Install applies the head for the current route right away and again after
// every navigation, disposing the previous registration first. The returned
// func detaches from the navigator and disposes the live registration.
func Install(nav Navigator, client *Client, opts Options) (uninstall func()) {
	b := &binding{client: client, opts: opts}

	remove := nav.AfterEach(func(to, _ router.Location) {
		b.apply(to)
	})
	b.apply(nav.CurrentRoute())

	return func() {
		remove()
		if b.active != nil {
			b.active.Dispose()
			b.active = nil
		}
	}
}
