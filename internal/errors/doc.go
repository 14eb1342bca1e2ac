// Package errors provides coded, explainable errors for the router.
//
// Each code (e.g. "E101") maps to a category, a short message, a longer
// explanation and a documentation URL. Errors wrap their cause, so callers
// can still match sentinels with errors.Is.
//
// # Usage
//
//	err := errors.New("E101").
//	    WithMessage("You cannot go with <StaticRouter>").
//	    Wrap(history.ErrStaticNavigation)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: You cannot go with <StaticRouter>
//	//
//	//   A static history serves a single server render; it cannot move between entries.
//	//
//	//   Cause: navigation not supported by a static history
//	//
//	//   Learn more: https://vrouter.dev/docs/errors/E101
package errors
