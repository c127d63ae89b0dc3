// Package bookcat provides an embeddable book catalog browser backed by the
// Open Library search API.
//
// A Browser owns one live search session. Results arrive page by page and
// accumulate in a session cache; an author filter can narrow what is shown
// without another request. Favorites are kept in a durable store and every
// change is broadcast so all views stay in agreement.
//
// # Basic Usage
//
//	b, err := bookcat.New(bookcat.Config{StateDir: "/var/lib/bookcat"},
//	    bookcat.WithView(func(favs *bookcat.Favorites) bookcat.ResultsView {
//	        return myView{favs: favs}
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	if err := b.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	b.Controller().SubmitQuery(ctx, "tolkien")
//
// An empty query browses the popular list.
//
// # Storage
//
// Config.Store selects where favorites live: "file" (a JSON file in
// StateDir, watched for edits made by other processes), "badger",
// "sqlite" or "redis". Use [WithRepository] to supply your own.
//
// # Lifecycle States
//
// A Browser is [StateStopped], [StateStarting], [StateRunning] or
// [StateStopping]. Use [Browser.Status] to query the current state.
package bookcat
