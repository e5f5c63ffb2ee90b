// Package regrid implements the plugin composition and
// template resolution engine used to render grids and tables.
//
// Plugins contribute named getters (static or computed values)
// and named templates (render fragments, optionally guarded by a predicate).
// Plugins are composed in order into a Stack, later plugins take
// precedence over earlier ones:
//
//	stack, err := regrid.NewStack(ctx,
//	    grid.New(rows, columns...).Plugin(),
//	    table.New().Plugin(),
//	)
//	node, err := stack.Render(ctx, "root", regrid.Params{})
//
// Getters with the same name form a chain: a computed getter
// can read the value of the older contribution for its own name
// and derive a new value from it.
//
// Templates with the same name are tried from the most recently
// mounted plugin to the first one, within a plugin in declaration order.
// The first template whose predicate accepts the render params is used.
// A template can render a placeholder of its own name
// to delegate to the next template of lower precedence.
//
// Every render works on an immutable Snapshot of the Stack
// and memoizes getter values for the duration of the Pass,
// so mounting or unmounting plugins concurrently
// is never observed in the middle of a render.
package regrid
