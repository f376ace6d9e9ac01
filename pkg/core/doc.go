// Package core provides the retained tree and the reconciler that keeps it in
// step with an immediate-style description function.
//
// Application code describes its UI by calling ordinary functions on every
// build pass. Each call that needs persistent data goes through [UseState] or
// [Build], which match the request against the entries retained from the
// previous pass:
//
//	func app(cx *core.Cx) {
//	    core.UseState(cx, key.Caller(0), func() int { return 0 }, func(cx *core.Cx, count *int) {
//	        if widgets.Button(cx, widgets.ButtonProps{Label: strconv.Itoa(*count)}) {
//	            *count++
//	        }
//	    })
//	}
//
// # Matching
//
// Every scope keeps two cursors, one over state slots and one over structural
// nodes. A lookup scans forward from the cursor for an entry with the same
// call position. Entries skipped over are marked dead; a miss inserts a new
// entry at the cursor. After the scope's content has run, everything past the
// cursor and everything marked dead is pruned. Matching never looks behind
// the cursor, so swapping two siblings recreates one of them.
//
// Reaching a retained position with a different type is a programming error
// and panics with an [errors.IdentityError].
//
// # Render objects
//
// Structural nodes hold a [RenderObject]. The tree routes events, lifecycle
// notifications, layout and paint through [Child] wrappers that maintain each
// node's [ChildState] and merge it into the parent after every call.
package core
